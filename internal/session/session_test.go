package session

import (
	"errors"
	"testing"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

func loadLens(t *testing.T, name string) *lens.Lens {
	t.Helper()
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestStart(t *testing.T) {
	s := New(loadLens(t, "interpersonal"))
	if s.Stage != StageSetup {
		t.Fatalf("stage = %s, want setup", s.Stage)
	}
	s.Start(0, 7)
	if s.Stage != StageQuestions {
		t.Errorf("stage = %s, want questions", s.Stage)
	}
	if len(s.Active) != DefaultQuestionCount {
		t.Errorf("got %d active questions, want %d", len(s.Active), DefaultQuestionCount)
	}
	seen := make(map[string]bool)
	for _, id := range s.Order() {
		if seen[id] {
			t.Errorf("duplicate question %s", id)
		}
		seen[id] = true
	}
}

func TestStartCount(t *testing.T) {
	s := New(loadLens(t, "financial"))
	s.Start(10, 1)
	if len(s.Active) != 10 {
		t.Errorf("got %d active questions, want 10", len(s.Active))
	}
	s.Start(100, 1)
	if len(s.Active) != 25 {
		t.Errorf("count above bank size: got %d, want 25", len(s.Active))
	}
}

func TestShuffleDeterministic(t *testing.T) {
	l := loadLens(t, "big-picture")
	a := Shuffle(l.Bank, 42)
	b := Shuffle(l.Bank, 42)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different order at %d", i)
		}
	}
	if &a[0] == &l.Bank[0] {
		t.Error("Shuffle must not alias the bank")
	}
	if l.Bank[0].ID != "b01" {
		t.Error("Shuffle must not reorder the bank")
	}
}

func TestAnswerAndNavigate(t *testing.T) {
	s := New(loadLens(t, "interpersonal"))
	s.Start(3, 9)

	s.Back()
	if s.Index != 0 {
		t.Errorf("Back at start: index = %d", s.Index)
	}

	q, _, answered, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	if answered {
		t.Error("fresh question should be unanswered")
	}
	if err := s.Answer(q.ID, 3); err != nil {
		t.Fatal(err)
	}
	_, a, answered, _ := s.Current()
	if !answered || a != 3 {
		t.Errorf("Current answer = %d, %v", a, answered)
	}

	s.Next()
	s.Next()
	s.Next()
	if s.Index != 2 {
		t.Errorf("Next past end: index = %d, want 2", s.Index)
	}
	if got := s.Progress(); got < 0.66 || got > 0.67 {
		t.Errorf("progress = %v", got)
	}
}

func TestAnswerErrors(t *testing.T) {
	s := New(loadLens(t, "interpersonal"))
	if err := s.Answer("i01", 2); !errors.Is(err, ErrWrongStage) {
		t.Errorf("answer in setup: got %v", err)
	}
	s.Start(2, 3)
	id := s.Active[0].ID
	if err := s.Answer(id, 5); !errors.Is(err, assess.ErrAnswerOutOfRange) {
		t.Errorf("out of range: got %v", err)
	}
	if err := s.Answer("nope", 1); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestFinish(t *testing.T) {
	s := New(loadLens(t, "financial"))
	if _, err := s.Finish(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("finish in setup: got %v", err)
	}
	s.Start(0, 11)
	for _, id := range s.Order() {
		if err := s.Answer(id, 4); err != nil {
			t.Fatal(err)
		}
	}
	r, err := s.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage != StageResults {
		t.Errorf("stage = %s, want results", s.Stage)
	}
	if len(r.PerVariable) != 6 {
		t.Errorf("got %d variables, want 6", len(r.PerVariable))
	}
}

func TestResetAndRestart(t *testing.T) {
	s := New(loadLens(t, "interpersonal"))
	s.Start(5, 1)
	_ = s.Answer(s.Active[0].ID, 1)
	s.Next()

	s.Restart(2)
	if s.Stage != StageQuestions || len(s.Answers) != 0 || s.Index != 0 || len(s.Active) != 5 {
		t.Errorf("restart did not clear the run: %+v", s)
	}

	s.Reset()
	if s.Stage != StageSetup || s.Active != nil || len(s.Answers) != 0 {
		t.Errorf("reset did not clear the run: %+v", s)
	}
	if s.Lens == nil {
		t.Error("reset must keep the lens")
	}
}
