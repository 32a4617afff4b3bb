package assess

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

const (
	MinAnswer = 0
	MaxAnswer = 4

	// maxSpread is the largest possible population stdev on a 0-4 scale.
	maxSpread = 2.0
)

// ErrAnswerOutOfRange is returned when an answer falls outside [MinAnswer, MaxAnswer].
var ErrAnswerOutOfRange = errors.New("answer out of range")

// DirectionalScore flips reverse-scored answers so 4 is always favorable.
func DirectionalScore(answer int, reverse bool) int {
	if reverse {
		return MaxAnswer - answer
	}
	return answer
}

// Score aggregates answers into per-variable scores and an overall percentage.
// Questions without an answer are skipped. importance weights each variable in
// the overall score; variables missing from it weigh 1.0.
func Score(questions []Question, answers Answers, importance map[string]float64) (*Result, error) {
	if err := checkRange(questions, answers); err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	weights := make(map[string]float64)
	raw := make(map[string][]float64)
	var order []string
	scored := []ScoredQuestion{}

	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		s := DirectionalScore(a, q.Reverse)
		v := q.Variable

		if _, seen := raw[v]; !seen {
			order = append(order, v)
			raw[v] = nil
		}
		sums[v] += float64(s) * q.Weight
		weights[v] += q.Weight
		raw[v] = append(raw[v], float64(s))

		scored = append(scored, ScoredQuestion{
			Variable: v,
			Score:    s,
			Weight:   q.Weight,
			Question: q,
			Answer:   a,
		})
	}

	perVar := make(map[string]VariableScore, len(order))
	for _, v := range order {
		den := weights[v]
		if den == 0 {
			den = 1.0
		}
		mean := sums[v] / den
		pct := mean / MaxAnswer * 100
		perVar[v] = VariableScore{
			Mean:       mean,
			Pct:        pct,
			Zone:       ZoneFor(pct),
			Volatility: volatility(raw[v]),
			Samples:    len(raw[v]),
		}
	}

	SortScored(scored)

	return &Result{
		Overall:     overall(perVar, order, importance),
		PerVariable: perVar,
		Ranked:      scored,
		Order:       order,
	}, nil
}

func checkRange(questions []Question, answers Answers) error {
	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		if a < MinAnswer || a > MaxAnswer {
			return fmt.Errorf("assess.Score: question %s: %d: %w", q.ID, a, ErrAnswerOutOfRange)
		}
	}
	return nil
}

// volatility is the population stdev of 0-4 scores scaled to 0-100.
func volatility(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(scores)
	if err != nil {
		return 0
	}
	return Clamp(sd/maxSpread*100, 0, 100)
}

func overall(perVar map[string]VariableScore, order []string, importance map[string]float64) float64 {
	var num, den float64
	for _, v := range order {
		w := importanceOf(importance, v)
		num += perVar[v].Pct * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func importanceOf(importance map[string]float64, v string) float64 {
	if w, ok := importance[v]; ok {
		return w
	}
	return 1.0
}
