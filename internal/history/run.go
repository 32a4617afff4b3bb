package history

import (
	"github.com/dshills/lenscheck/internal/export"
	"github.com/dshills/lenscheck/internal/render"
)

// NewRun captures a report as a run ready to Save.
func NewRun(rep *render.Report, answers map[string]int, source string) *Run {
	snap := export.FromReport(rep, answers)
	return &Run{
		Lens:      snap.Lens,
		Overall:   snap.Overall,
		Zone:      string(rep.OverallZone),
		RankMode:  string(rep.Readout.RankMode),
		Variables: snap.Variables,
		Answers:   snap.Answers,
		Source:    source,
	}
}
