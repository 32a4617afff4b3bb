// Package assess scores a lens questionnaire and derives its readout.
package assess

// Question is a single Likert item in a lens bank.
type Question struct {
	ID       string  `json:"id" yaml:"id"`
	Text     string  `json:"text" yaml:"text"`
	Variable string  `json:"variable" yaml:"variable"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Reverse  bool    `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	Phase    int     `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// Answers maps question IDs to a raw answer in [MinAnswer, MaxAnswer].
type Answers map[string]int

// Result is the output of Score.
type Result struct {
	Overall     float64                  `json:"overall"`
	PerVariable map[string]VariableScore `json:"per_variable"`
	Ranked      []ScoredQuestion         `json:"ranked_questions"`
	Order       []string                 `json:"-"`
}

// VariableScore is the aggregate for one variable.
type VariableScore struct {
	Mean       float64 `json:"mean_0_4"`
	Pct        float64 `json:"pct"`
	Zone       Zone    `json:"zone"`
	Volatility float64 `json:"volatility"`
	Samples    int     `json:"samples"`
}

// ScoredQuestion is one answered question after reverse handling.
type ScoredQuestion struct {
	Variable string   `json:"variable"`
	Score    int      `json:"score"`
	Weight   float64  `json:"weight"`
	Question Question `json:"question"`
	Answer   int      `json:"answer"`
}

// Driver is a variable ranked by weighted score magnitude.
type Driver struct {
	Variable string  `json:"variable"`
	Pct      float64 `json:"pct"`
	Weighted float64 `json:"weighted"`
}

// Readout is the interpreted view of a Result.
type Readout struct {
	Strongest   string           `json:"strongest,omitempty"`
	PrimaryRisk string           `json:"primary_risk,omitempty"`
	Distortions []ScoredQuestion `json:"distortions"`
	Lever       *ScoredQuestion  `json:"lever,omitempty"`
	NextTargets []string         `json:"next_targets"`
	Drivers     []Driver         `json:"drivers,omitempty"`
	RankMode    RankMode         `json:"rank_mode"`
}
