// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the deep-research pipeline.
// Every record that crosses a stage boundary lives here: the classifier output,
// the research plan, raw search sources, extracted findings, and the final
// report. All of them are request-scoped; nothing in this package outlives a
// single research turn.
package types

// InputType classifies the raw user query.
type InputType string

const (
	// InputTicker marks a stock-market symbol (e.g. "NVDA").
	InputTicker InputType = "ticker"

	// InputGeneral marks free-text research queries.
	InputGeneral InputType = "general"
)

// Classification is the intent resolver's output. For ticker inputs,
// ResolvedName carries the company name and Context a short descriptive hint
// (e.g. "semiconductors, GPUs, AI"). For general inputs, ResolvedName is the
// cleaned query and Context may be empty. The model's answer is passed through
// as-is; there is no local validation beyond JSON decoding.
type Classification struct {
	InputType    InputType `json:"input_type" yaml:"input_type"`
	ResolvedName string    `json:"resolved_name" yaml:"resolved_name"`
	Context      string    `json:"context" yaml:"context"`
}

// IsTicker reports whether the query was classified as a stock ticker.
func (c Classification) IsTicker() bool { return c.InputType == InputTicker }

// Angle is one research sub-topic explored via an independent search and
// extraction pass.
type Angle struct {
	// Title is the short angle name (e.g. "SWOT Analysis").
	Title string `json:"title" yaml:"title"`

	// Keywords are search terms for this angle.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Description says what the deep dive should look for.
	Description string `json:"description" yaml:"description"`
}

// Plan is the discovery stage's output: 3-4 distinct research angles.
// Non-overlap between angles is a prompt instruction, not a programmatic
// guarantee.
type Plan struct {
	Angles []Angle `json:"angles" yaml:"angles"`
}

// Source is one search result: title, URL, and snippet text. Sources are
// ephemeral; they are produced by one search call, consumed by one extraction
// step, and never persisted.
type Source struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Finding is an attributed factual claim extracted from one source.
type Finding struct {
	// Claim is the factual assertion or number being cited.
	Claim string `json:"claim" yaml:"claim"`

	// SourceTitle and SourceURL identify the supporting search result.
	SourceTitle string `json:"source_title" yaml:"source_title"`
	SourceURL   string `json:"source_url" yaml:"source_url"`

	// Evidence is the snippet text the claim was drawn from.
	Evidence string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// Section holds one angle's deep-dive results.
type Section struct {
	Angle    string    `json:"angle" yaml:"angle"`
	Summary  string    `json:"summary" yaml:"summary"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Report is the final structured synthesis returned to the user. It is the
// only object that crosses the pipeline/presentation boundary and is treated
// as immutable once produced.
type Report struct {
	Title              string    `json:"title" yaml:"title"`
	ExecutiveSummary   string    `json:"executive_summary" yaml:"executive_summary"`
	Sections           []Section `json:"sections" yaml:"sections"`
	RisksUncertainties []string  `json:"risks_uncertainties" yaml:"risks_uncertainties"`
	WatchList          []string  `json:"watch_list" yaml:"watch_list"`
}
