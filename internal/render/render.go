// Package render produces Markdown and JSON output from a scored run.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/lenscheck/internal/assess"
)

// Markdown renders a report as a Markdown readout.
func Markdown(rep *Report) string {
	var b strings.Builder

	title := rep.LensTitle
	if title == "" {
		title = rep.Lens
	}
	fmt.Fprintf(&b, "# Lens Check: %s\n\n", title)
	if intro := strings.TrimSpace(rep.Intro); intro != "" {
		fmt.Fprintf(&b, "%s\n\n", intro)
	}

	res := rep.Result
	if res == nil || len(res.PerVariable) == 0 {
		b.WriteString("No answers recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Overall:** %.1f%% (%s)\n", rep.Overall, rep.OverallZone)
	fmt.Fprintf(&b, "**Answered:** %d\n\n", rep.Answered)

	// Variables
	b.WriteString("## Variables\n\n")
	for _, v := range rep.Order {
		vs, ok := res.PerVariable[v]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- **%s** (%s): %.1f%% %s, volatility %.0f\n",
			rep.label(v), v, vs.Pct, vs.Zone, vs.Volatility)
	}
	b.WriteString("\n")

	ro := rep.Readout
	b.WriteString("## Readout\n\n")
	fmt.Fprintf(&b, "**Strongest area:** %s (%.1f%%)\n", rep.label(ro.Strongest), res.PerVariable[ro.Strongest].Pct)
	risk := res.PerVariable[ro.PrimaryRisk]
	fmt.Fprintf(&b, "**Primary risk:** %s (%.1f%%, %s)\n\n", rep.label(ro.PrimaryRisk), risk.Pct, risk.Zone)

	if len(ro.Distortions) > 0 {
		b.WriteString("## Dominant Distortions\n\n")
		for i, sq := range ro.Distortions {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, sq.Question.ID, sq.Question.Text)
			fmt.Fprintf(&b, "   %s: score %d, weight %.1f\n", rep.label(sq.Variable), sq.Score, sq.Weight)
		}
		b.WriteString("\n")
	}

	if ro.Lever != nil {
		b.WriteString("## Smallest Lever\n\n")
		fmt.Fprintf(&b, "> %s\n\n", ro.Lever.Question.Text)
		fmt.Fprintf(&b, "Raise one notch in **%s** before anything else.\n\n", rep.label(ro.Lever.Variable))
	}

	if len(ro.NextTargets) > 0 {
		b.WriteString("## Next Focus\n\n")
		for _, v := range ro.NextTargets {
			fmt.Fprintf(&b, "- %s (%s)\n", rep.label(v), res.PerVariable[v].Zone)
		}
		b.WriteString("\n")
	}

	if ro.RankMode == assess.RankDrivers && len(ro.Drivers) > 0 {
		b.WriteString("## Primary Drivers\n\n")
		for i, d := range ro.Drivers {
			fmt.Fprintf(&b, "%d. %s: %.1f weighted (%.1f%%)\n", i+1, rep.label(d.Variable), d.Weighted, d.Pct)
		}
		b.WriteString("\n")
	}

	if rep.Input.AnswersFile != "" {
		b.WriteString("## Input\n\n")
		fmt.Fprintf(&b, "- %s (%s)\n", rep.Input.AnswersFile, rep.Input.AnswersHash)
	}

	return b.String()
}
