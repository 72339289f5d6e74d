// Package report renders evaluations into markdown and PDF and delivers them.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/handpartners/pmfstudio/schema"
)

// componentTitles maps component keys to the row labels used in the report.
var componentTitles = map[schema.ComponentKey]string{
	schema.ComponentProblem:   "Problem",
	schema.ComponentPersona:   "Persona",
	schema.ComponentSolution:  "Solution",
	schema.ComponentMarket:    "Market",
	schema.ComponentRetention: "Retention",
}

// fallbackNarrative stands in when narrative generation was unavailable.
const fallbackNarrative = `## Problem & Persona

Qualitative analysis was not generated for this report. The component scores
in the overview reflect the structured survey answers only.

## Solution & Value

Not assessed.

## Market Validation & Traction

Not assessed.

## Recommendations & Next Steps

Re-run report generation with narrative enabled, or review the component
scores above with an advisor.`

// BuildReportMarkdown assembles the full report document. The overview
// section is computed from the evaluation; the remaining sections come from
// the narrative, which is expected to carry its own level-2 headings.
func BuildReportMarkdown(startupName string, eval schema.Evaluation, narrative string, generatedAt time.Time) string {
	var sb strings.Builder

	title := "PMF Assessment Report"
	if startupName != "" {
		title = fmt.Sprintf("PMF Assessment Report: %s", startupName)
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "*Generated %s*\n\n", generatedAt.Format("January 2, 2006"))

	sb.WriteString("## Overview\n\n")
	if eval.Display.Score != nil {
		fmt.Fprintf(&sb, "**PMF Score:** %.1f / 100\n\n", *eval.Display.Score)
	} else {
		sb.WriteString("**PMF Score:** not assessable\n\n")
	}
	fmt.Fprintf(&sb, "**Stage:** %s\n\n", eval.Display.Stage)
	fmt.Fprintf(&sb, "**Data Quality:** %d / 100 (%s)\n\n", eval.Quality.Score, eval.Quality.Label)
	if eval.Display.Note != "" {
		fmt.Fprintf(&sb, "> %s\n\n", eval.Display.Note)
	}

	sb.WriteString("| Component | Score |\n|---|---|\n")
	for _, key := range schema.AllComponentKeys {
		fmt.Fprintf(&sb, "| %s | %.0f |\n", componentTitles[key], eval.Components[key])
	}
	sb.WriteString("\n")

	narrative = strings.TrimSpace(narrative)
	if narrative == "" {
		narrative = fallbackNarrative
	}
	sb.WriteString(narrative)
	sb.WriteString("\n")

	return sb.String()
}

// ReportFilename builds a filesystem-safe PDF filename for a startup.
func ReportFilename(startupName string, generatedAt time.Time) string {
	name := strings.TrimSpace(startupName)
	if name == "" {
		name = "startup"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return fmt.Sprintf("PMF_Report_%s_%s.pdf", b.String(), generatedAt.Format("2006-01-02"))
}
