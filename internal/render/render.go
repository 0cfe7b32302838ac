// Package render produces Markdown, text and SVG output from assessments.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/questionnaire"
)

// Markdown renders a result as a Markdown report. labels rates each module;
// a nil table uses the default thresholds.
func Markdown(r *assessment.Result, labels *assessment.TierTable) string {
	if labels == nil {
		labels = assessment.DefaultTierTable()
	}
	var b strings.Builder

	// Summary
	fmt.Fprintf(&b, "# Innovation Capability Assessment: %s\n\n", r.CompanyName)
	fmt.Fprintf(&b, "**Maturity:** %s\n", r.Tier.Name)
	fmt.Fprintf(&b, "**Overall:** %s%% (%d / %d)\n\n", Percent(r.OverallPercentage), r.TotalScore, r.MaxTotalScore)
	if r.Tier.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Tier.Description)
	}

	// Modules
	b.WriteString("## Module Scores\n\n")
	if len(r.ModuleScores) == 0 {
		b.WriteString("No modules scored.\n\n")
	} else {
		b.WriteString("| Module | Score | Percentage | Rating |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, ms := range r.ModuleScores {
			fmt.Fprintf(&b, "| %s | %d / %d | %s%% | %s |\n",
				ms.ModuleName, ms.Score, ms.MaxScore, Percent(ms.Percentage), labels.ScoreLabel(ms.Percentage))
		}
		b.WriteString("\n")
	}

	// Recommendations
	if len(r.Tier.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range r.Tier.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Questionnaire renders the catalog as plain text with the answer scale.
func Questionnaire(c *questionnaire.Catalog) string {
	var b strings.Builder
	for i, m := range c.Modules() {
		fmt.Fprintf(&b, "Module %d: %s (%s)\n", i+1, m.Name, m.ID)
		if m.Description != "" {
			fmt.Fprintf(&b, "  %s\n", m.Description)
		}
		for _, q := range m.Questions {
			fmt.Fprintf(&b, "  [%s] %s\n", q.ID, q.Text)
		}
		b.WriteString("\n")
	}
	b.WriteString("Scale:\n")
	for s := questionnaire.MinLikert; s <= questionnaire.MaxLikert; s++ {
		fmt.Fprintf(&b, "  %d = %s\n", s, questionnaire.ScaleLabel(s))
	}
	fmt.Fprintf(&b, "\n%d questions\n", c.TotalQuestions())
	return b.String()
}

// Tiers renders a threshold table, highest tier first.
func Tiers(t *assessment.TierTable) string {
	var b strings.Builder
	for _, th := range t.Thresholds() {
		tier, _ := t.Tier(th.Level)
		fmt.Fprintf(&b, ">= %5.1f%%  %-18s %s\n", th.LowerBound, tier.Name, th.Level)
	}
	return b.String()
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
