// Package export writes a compact snapshot of a scored run to a file.
package export

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/lenscheck/internal/render"
)

// Snapshot is the copy/paste view of a run.
type Snapshot struct {
	Lens      string             `json:"lens" yaml:"lens"`
	Overall   float64            `json:"overall" yaml:"overall"`
	Variables map[string]float64 `json:"variables" yaml:"variables"`
	Answers   map[string]int     `json:"answers" yaml:"answers"`
}

// FromReport builds a snapshot with percentages rounded to two places.
func FromReport(rep *render.Report, answers map[string]int) Snapshot {
	s := Snapshot{
		Lens:      rep.Lens,
		Overall:   Round2(rep.Overall),
		Variables: map[string]float64{},
		Answers:   map[string]int{},
	}
	if rep.Result != nil {
		for v, vs := range rep.Result.PerVariable {
			s.Variables[v] = Round2(vs.Pct)
		}
	}
	for id, n := range answers {
		s.Answers[id] = n
	}
	return s
}

// Empty reports whether the snapshot holds no scored variables.
func (s Snapshot) Empty() bool {
	return len(s.Variables) == 0
}

// WriteFile writes the snapshot as YAML to outPath.
// If the snapshot is empty, no file is created.
func WriteFile(s Snapshot, outPath string) error {
	if s.Empty() {
		return nil
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("export.WriteFile: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("export.WriteFile: %w", err)
	}
	return nil
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
