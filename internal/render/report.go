package render

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

// Tool is the name stamped into every report.
const Tool = "lenscheck"

// Report is a scored run ready for output.
type Report struct {
	Tool        string            `json:"tool"`
	Version     string            `json:"version"`
	Lens        string            `json:"lens"`
	LensTitle   string            `json:"lens_title"`
	Intro       string            `json:"-"`
	Input       Input             `json:"input"`
	Answered    int               `json:"answered"`
	Overall     float64           `json:"overall"`
	OverallZone assess.Zone       `json:"overall_zone"`
	Labels      map[string]string `json:"labels"`
	Order       []string          `json:"variable_order"`
	Result      *assess.Result    `json:"result"`
	Readout     assess.Readout    `json:"readout"`
}

// Input records where the answers came from.
type Input struct {
	AnswersFile string `json:"answers_file,omitempty"`
	AnswersHash string `json:"answers_hash,omitempty"`
}

// Build scores answers against every question in l and assembles the report.
func Build(l *lens.Lens, answers assess.Answers, mode assess.RankMode, in Input, version string) (*Report, error) {
	res, err := assess.Score(l.Bank, answers, l.Importance())
	if err != nil {
		return nil, fmt.Errorf("render.Build: %w", err)
	}
	return FromResult(l, res, answers, mode, in, version), nil
}

// FromResult wraps an existing result, such as one produced by a session.
func FromResult(l *lens.Lens, res *assess.Result, answers assess.Answers, mode assess.RankMode, in Input, version string) *Report {
	order := l.VariableOrder()
	labels := make(map[string]string, len(order))
	for _, v := range order {
		labels[v] = l.Label(v)
	}

	answered := 0
	for id := range answers {
		if _, ok := l.Question(id); ok {
			answered++
		}
	}

	overallZone := assess.Zone("")
	if len(res.PerVariable) > 0 {
		overallZone = assess.ZoneFor(res.Overall)
	}

	return &Report{
		Tool:        Tool,
		Version:     version,
		Lens:        l.Name,
		LensTitle:   l.Title,
		Intro:       l.Intro,
		Input:       in,
		Answered:    answered,
		Overall:     res.Overall,
		OverallZone: overallZone,
		Labels:      labels,
		Order:       order,
		Result:      res,
		Readout:     assess.Summarize(res, order, l.Importance(), mode),
	}
}

// JSON encodes the report with two-space indentation.
func JSON(rep *Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render.JSON: %w", err)
	}
	return data, nil
}

func (rep *Report) label(v string) string {
	if l, ok := rep.Labels[v]; ok && l != "" {
		return l
	}
	return v
}
