// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs one research turn as a linear pipeline:
// classify -> discover -> deep-dive (one pass per angle) -> synthesize.
// Every stage is a blocking call; a failure at any stage aborts the turn
// with a stage-tagged error and no partial report. All state is local to
// the Run call, so one Pipeline value serves concurrent turns.
package research

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/deep-research/internal/ai"
	"github.com/pdiddy/deep-research/internal/fetch"
	"github.com/pdiddy/deep-research/pkg/types"
)

// Completer abstracts the hosted completion endpoint so tests can supply a
// mock. Implementations return the raw completion text for one system
// prompt + user message exchange.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Searcher abstracts the web search client.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]types.Source, error)
}

// Pipeline stage identifiers, used in progress events and error prefixes.
const (
	StageClassify   = "classify"
	StageDiscover   = "discover"
	StageDeepDive   = "deepdive"
	StageSynthesize = "synthesize"
)

// Event is one progress update emitted at a stage boundary. The server
// forwards events to the browser; the CLI prints them to stderr.
type Event struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Pipeline wires the completion endpoint, the search client, and the
// optional page fetcher into one runnable research chain.
type Pipeline struct {
	ai      Completer
	search  Searcher
	fetcher fetch.Fetcher
	cfg     types.ResearchConfig
}

// New builds a Pipeline. The fetcher may be nil; deep dives then work from
// search snippets alone.
func New(completer Completer, searcher Searcher, fetcher fetch.Fetcher, cfg types.ResearchConfig) *Pipeline {
	if cfg.MinAngles <= 0 {
		cfg.MinAngles = 3
	}
	if cfg.MaxAngles <= 0 {
		cfg.MaxAngles = 4
	}
	if cfg.DiscoveryResults <= 0 {
		cfg.DiscoveryResults = 3
	}
	if cfg.AngleResults <= 0 {
		cfg.AngleResults = 3
	}
	return &Pipeline{ai: completer, search: searcher, fetcher: fetcher, cfg: cfg}
}

// Run executes one research turn for query and returns the report along
// with the classification the turn was routed by. The progress callback may
// be nil. On any stage failure Run returns a nil report and an error
// carrying the stage name; there is no partial-report degradation.
func (p *Pipeline) Run(ctx context.Context, query string, progress func(Event)) (*types.Report, types.Classification, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.Classification{}, fmt.Errorf("empty query")
	}

	emit := progress
	if emit == nil {
		emit = func(Event) {}
	}

	emit(Event{StageClassify, "checking intent and resolving query"})
	classification, err := p.classify(ctx, query)
	if err != nil {
		return nil, types.Classification{}, fmt.Errorf("%s: %w", StageClassify, err)
	}
	emit(Event{StageClassify, fmt.Sprintf("classified as %s: %s", classification.InputType, classification.ResolvedName)})

	emit(Event{StageDiscover, "initial discovery search: identifying research angles"})
	plan, err := p.discover(ctx, classification)
	if err != nil {
		return nil, classification, fmt.Errorf("%s: %w", StageDiscover, err)
	}
	emit(Event{StageDiscover, fmt.Sprintf("plan generated with %d research angles", len(plan.Angles))})

	sections := make([]types.Section, 0, len(plan.Angles))
	for i, angle := range plan.Angles {
		emit(Event{StageDeepDive, fmt.Sprintf("deep dive %d/%d: %s", i+1, len(plan.Angles), angle.Title)})
		section, err := p.deepDive(ctx, classification, angle)
		if err != nil {
			return nil, classification, fmt.Errorf("%s %q: %w", StageDeepDive, angle.Title, err)
		}
		sections = append(sections, section)
	}

	emit(Event{StageSynthesize, "synthesizing final report"})
	report, err := p.synthesize(ctx, classification, sections)
	if err != nil {
		return nil, classification, fmt.Errorf("%s: %w", StageSynthesize, err)
	}
	return report, classification, nil
}

// classify delegates the ticker-vs-general decision to the model. The
// response is passed through as-is: no local heuristics, no confidence gate.
func (p *Pipeline) classify(ctx context.Context, query string) (types.Classification, error) {
	var c types.Classification
	if err := p.completeJSON(ctx, classifierSystem, query, &c); err != nil {
		return types.Classification{}, err
	}
	if c.ResolvedName == "" {
		c.ResolvedName = query
	}
	return c, nil
}

// discover issues exactly one search for the resolved topic and asks the
// model for 3-4 non-overlapping research angles grounded in the results.
// Zero discovery results fail the turn: the plan would have nothing to
// ground itself in.
func (p *Pipeline) discover(ctx context.Context, c types.Classification) (types.Plan, error) {
	query := strings.TrimSpace(c.ResolvedName + " " + c.Context)
	sources, err := p.search.Search(ctx, query, p.cfg.DiscoveryResults)
	if err != nil {
		return types.Plan{}, err
	}
	if len(sources) == 0 {
		return types.Plan{}, fmt.Errorf("discovery search returned no results for %q", query)
	}

	var buf bytes.Buffer
	err = plannerPromptTmpl.Execute(&buf, struct {
		Topic   string
		Sources []types.Source
	}{Topic: c.ResolvedName, Sources: sources})
	if err != nil {
		return types.Plan{}, fmt.Errorf("rendering prompt: %w", err)
	}

	var plan types.Plan
	if err := p.completeJSON(ctx, plannerSystem, buf.String(), &plan); err != nil {
		return types.Plan{}, err
	}
	if n := len(plan.Angles); n < p.cfg.MinAngles || n > p.cfg.MaxAngles {
		return types.Plan{}, fmt.Errorf("plan has %d angles, want %d-%d", n, p.cfg.MinAngles, p.cfg.MaxAngles)
	}
	return plan, nil
}

// deepDive issues exactly one search for an angle and asks the model to
// extract attributed findings from the results. An angle whose search comes
// back empty produces a placeholder section without a completion call;
// giving the model an empty evidence set only invites fabricated citations.
func (p *Pipeline) deepDive(ctx context.Context, c types.Classification, angle types.Angle) (types.Section, error) {
	query := strings.TrimSpace(c.ResolvedName + " " + angle.Title)
	sources, err := p.search.Search(ctx, query, p.cfg.AngleResults)
	if err != nil {
		return types.Section{}, err
	}
	if len(sources) == 0 {
		return types.Section{
			Angle:   angle.Title,
			Summary: "No sources found for this angle.",
		}, nil
	}

	type sourceContent struct {
		Title   string
		URL     string
		Content string
	}
	contents := make([]sourceContent, 0, len(sources))
	for _, s := range sources {
		content := s.Snippet
		if p.cfg.FetchPages && p.fetcher != nil {
			if text, fetchErr := p.fetcher.Page(s.URL); fetchErr == nil && len(text) > len(content) {
				content = text
			}
		}
		contents = append(contents, sourceContent{Title: s.Title, URL: s.URL, Content: content})
	}

	var buf bytes.Buffer
	err = workerPromptTmpl.Execute(&buf, struct {
		Topic       string
		Angle       string
		Description string
		Sources     []sourceContent
	}{Topic: c.ResolvedName, Angle: angle.Title, Description: angle.Description, Sources: contents})
	if err != nil {
		return types.Section{}, fmt.Errorf("rendering prompt: %w", err)
	}

	var section types.Section
	if err := p.completeJSON(ctx, workerSystem, buf.String(), &section); err != nil {
		return types.Section{}, err
	}
	if section.Angle == "" {
		section.Angle = angle.Title
	}
	return section, nil
}

// synthesize merges the per-angle sections into the final report. The result
// is validated structurally (summary present, at least one section); factual
// and citation accuracy remain the model's responsibility.
func (p *Pipeline) synthesize(ctx context.Context, c types.Classification, sections []types.Section) (*types.Report, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n\n", c.ResolvedName)
	for _, section := range sections {
		fmt.Fprintf(&sb, "## Angle: %s\n%s\n", section.Angle, section.Summary)
		for _, f := range section.Findings {
			fmt.Fprintf(&sb, "- %s (Source: %s, URL: %s)\n", f.Claim, f.SourceTitle, f.SourceURL)
		}
		sb.WriteString("\n")
	}

	var report types.Report
	if err := p.completeJSON(ctx, writerSystem, sb.String(), &report); err != nil {
		return nil, err
	}
	if report.ExecutiveSummary == "" {
		return nil, fmt.Errorf("report has no executive summary")
	}
	if len(report.Sections) == 0 {
		return nil, fmt.Errorf("report has no sections")
	}
	if report.Title == "" {
		report.Title = c.ResolvedName
	}
	return &report, nil
}

// completeJSON runs one completion and decodes the response into out. A
// decode failure is the schema-validation failure of the stage contract.
func (p *Pipeline) completeJSON(ctx context.Context, system, user string, out any) error {
	raw, err := p.ai.Complete(ctx, system, user)
	if err != nil {
		return err
	}
	return ai.DecodeJSON(raw, out)
}
