// Package session holds the in-progress state of one questionnaire run.
//
// A Session is owned by its caller and passed explicitly; the scoring code
// never retains it. Stages move setup -> questions -> results.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

// DefaultQuestionCount is the size of one run's battery.
const DefaultQuestionCount = 25

// Stage is the position of a run in its lifecycle.
type Stage string

const (
	StageSetup     Stage = "setup"
	StageQuestions Stage = "questions"
	StageResults   Stage = "results"
)

var (
	ErrWrongStage      = errors.New("session: wrong stage")
	ErrUnknownQuestion = errors.New("session: question not in this run")
)

// Session is the caller-owned state of a run.
type Session struct {
	Lens    *lens.Lens
	Stage   Stage
	Active  []assess.Question
	Answers assess.Answers
	Index   int
	Seed    uint64
	Count   int
}

// New returns a session in the setup stage for l.
func New(l *lens.Lens) *Session {
	return &Session{Lens: l, Stage: StageSetup, Answers: assess.Answers{}}
}

// Start shuffles the lens bank with seed and activates the first count
// questions. count <= 0 uses DefaultQuestionCount.
func (s *Session) Start(count int, seed uint64) {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	s.Seed = seed
	s.Count = count
	s.Active = Shuffle(s.Lens.Questions(0), seed)
	if len(s.Active) > count {
		s.Active = s.Active[:count]
	}
	s.Answers = assess.Answers{}
	s.Index = 0
	s.Stage = StageQuestions
}

// Restart reshuffles the same lens with a new seed.
func (s *Session) Restart(seed uint64) {
	s.Start(s.Count, seed)
}

// Reset clears the run and returns to setup. The lens is kept.
func (s *Session) Reset() {
	s.Active = nil
	s.Answers = assess.Answers{}
	s.Index = 0
	s.Stage = StageSetup
}

// Order returns the IDs of the active questions in presentation order.
func (s *Session) Order() []string {
	ids := make([]string, len(s.Active))
	for i, q := range s.Active {
		ids[i] = q.ID
	}
	return ids
}

// Current returns the question under the cursor and its recorded answer.
func (s *Session) Current() (q assess.Question, answer int, answered bool, err error) {
	if s.Stage != StageQuestions || len(s.Active) == 0 {
		return assess.Question{}, 0, false, fmt.Errorf("session.Current: %w (%s)", ErrWrongStage, s.Stage)
	}
	q = s.Active[s.Index]
	answer, answered = s.Answers[q.ID]
	return q, answer, answered, nil
}

// Answer records an answer for an active question.
func (s *Session) Answer(id string, value int) error {
	if s.Stage != StageQuestions {
		return fmt.Errorf("session.Answer: %w (%s)", ErrWrongStage, s.Stage)
	}
	if value < assess.MinAnswer || value > assess.MaxAnswer {
		return fmt.Errorf("session.Answer: %s: %d: %w", id, value, assess.ErrAnswerOutOfRange)
	}
	for _, q := range s.Active {
		if q.ID == id {
			s.Answers[id] = value
			return nil
		}
	}
	return fmt.Errorf("session.Answer: %s: %w", id, ErrUnknownQuestion)
}

// Next advances the cursor, stopping at the last question.
func (s *Session) Next() {
	if s.Index < len(s.Active)-1 {
		s.Index++
	}
}

// Back moves the cursor back, stopping at the first question.
func (s *Session) Back() {
	if s.Index > 0 {
		s.Index--
	}
}

// Progress returns the fraction of the battery before the cursor.
func (s *Session) Progress() float64 {
	if len(s.Active) == 0 {
		return 0
	}
	return float64(s.Index) / float64(len(s.Active))
}

// Finish moves the run to results and scores it.
func (s *Session) Finish() (*assess.Result, error) {
	if s.Stage != StageQuestions {
		return nil, fmt.Errorf("session.Finish: %w (%s)", ErrWrongStage, s.Stage)
	}
	r, err := assess.Score(s.Active, s.Answers, s.Lens.Importance())
	if err != nil {
		return nil, err
	}
	s.Stage = StageResults
	return r, nil
}

// Shuffle returns a copy of qs in a deterministic order for seed.
func Shuffle(qs []assess.Question, seed uint64) []assess.Question {
	out := append([]assess.Question(nil), qs...)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
