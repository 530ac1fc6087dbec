// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts a finished report into display text. It is the
// one purely mechanical stage of the system: no network, no state, and the
// same report always renders to byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Markdown renders a report as Markdown with headings, bullet lists, and
// source links, in a fixed section order: executive summary, one section per
// angle, risks, watch list. Empty lists drop their heading entirely.
func Markdown(r *types.Report) string {
	var b strings.Builder

	b.WriteString("## Executive summary\n\n")
	b.WriteString(r.ExecutiveSummary)
	b.WriteString("\n\n")

	for _, section := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Angle)
		if section.Summary != "" {
			b.WriteString(section.Summary)
			b.WriteString("\n\n")
		}
		if len(section.Findings) > 0 {
			b.WriteString("**Key findings**\n\n")
			for _, f := range section.Findings {
				fmt.Fprintf(&b, "- %s\n", f.Claim)
				if f.SourceTitle != "" || f.SourceURL != "" {
					fmt.Fprintf(&b, "  - Source: [%s](%s)\n", f.SourceTitle, f.SourceURL)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(r.RisksUncertainties) > 0 {
		b.WriteString("## Risks and uncertainties\n\n")
		for _, risk := range r.RisksUncertainties {
			fmt.Fprintf(&b, "- %s\n", risk)
		}
		b.WriteString("\n")
	}

	if len(r.WatchList) > 0 {
		b.WriteString("## What to watch next\n\n")
		for _, w := range r.WatchList {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
