package assess

const (
	DefaultMaxDistortions = 5
	DefaultMaxTargets     = 3
	minTargets            = 2
)

// TopDistortions returns the first n ranked questions.
// n <= 0 uses DefaultMaxDistortions.
func TopDistortions(r *Result, n int) []ScoredQuestion {
	if n <= 0 {
		n = DefaultMaxDistortions
	}
	if len(r.Ranked) <= n {
		return append([]ScoredQuestion(nil), r.Ranked...)
	}
	return append([]ScoredQuestion(nil), r.Ranked[:n]...)
}
