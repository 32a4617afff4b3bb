package lens

import (
	"strings"
	"testing"
)

func TestLoadBuiltinAll(t *testing.T) {
	tests := []struct {
		name      string
		questions int
		variables int
	}{
		{"interpersonal", 25, 6},
		{"financial", 25, 6},
		{"big-picture", 25, 6},
		{"universal", 22, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := LoadBuiltin(tt.name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", tt.name, err)
			}
			if l.Name != tt.name {
				t.Errorf("name = %q, want %q", l.Name, tt.name)
			}
			if len(l.Bank) != tt.questions {
				t.Errorf("got %d questions, want %d", len(l.Bank), tt.questions)
			}
			if len(l.Variables) != tt.variables {
				t.Errorf("got %d variables, want %d", len(l.Variables), tt.variables)
			}
			declared := make(map[string]bool)
			for _, v := range l.Variables {
				declared[v.Name] = true
				if v.Importance <= 0 {
					t.Errorf("variable %s has importance %v", v.Name, v.Importance)
				}
			}
			for _, q := range l.Bank {
				if !declared[q.Variable] {
					t.Errorf("question %s uses undeclared variable %q", q.ID, q.Variable)
				}
				if q.Weight <= 0 {
					t.Errorf("question %s has weight %v", q.ID, q.Weight)
				}
			}
		})
	}
}

func TestLoadBuiltinByTitle(t *testing.T) {
	l, err := LoadBuiltin("Big Picture")
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "big-picture" {
		t.Errorf("name = %q", l.Name)
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	if _, err := LoadBuiltin("nonexistent"); err == nil {
		t.Error("expected error for unknown lens")
	}
}

func TestList(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"big-picture", "financial", "interpersonal", "universal"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestReverseFlagsLoaded(t *testing.T) {
	l, err := LoadBuiltin("interpersonal")
	if err != nil {
		t.Fatal(err)
	}
	q, ok := l.Question("i01")
	if !ok || !q.Reverse {
		t.Errorf("i01 should be reverse scored: %+v", q)
	}
	q, ok = l.Question("i04")
	if !ok || q.Reverse {
		t.Errorf("i04 should not be reverse scored: %+v", q)
	}
}

func TestLabelAndImportance(t *testing.T) {
	l, err := LoadBuiltin("financial")
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Label("Clarity"); got != "Numbers + priorities clarity" {
		t.Errorf("Label(Clarity) = %q", got)
	}
	if got := l.Label("Unknown"); got != "Unknown" {
		t.Errorf("Label(Unknown) = %q, want passthrough", got)
	}
	imp := l.Importance()
	if imp["Baseline"] != 1.2 || imp["Feedback"] != 1.0 {
		t.Errorf("unexpected importance table: %v", imp)
	}
	order := l.VariableOrder()
	if order[0] != "Baseline" || order[len(order)-1] != "Feedback" {
		t.Errorf("unexpected order: %v", order)
	}
}

func TestQuestionsPhase(t *testing.T) {
	l, err := LoadBuiltin("universal")
	if err != nil {
		t.Fatal(err)
	}
	all := l.Questions(0)
	p1 := l.Questions(1)
	if len(all) != 22 {
		t.Errorf("got %d questions, want 22", len(all))
	}
	if len(p1) == 0 || len(p1) >= len(all) {
		t.Errorf("phase 1 should be a strict subset, got %d of %d", len(p1), len(all))
	}
	for _, q := range p1 {
		if q.Phase != 1 {
			t.Errorf("question %s has phase %d", q.ID, q.Phase)
		}
	}
}

func TestUniversalPolarity(t *testing.T) {
	l, err := LoadBuiltin("universal")
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range l.Bank {
		want := q.ID != "base_03"
		if q.Reverse != want {
			t.Errorf("%s reverse = %v, want %v", q.ID, q.Reverse, want)
		}
	}
}

func TestFormatQuestionnaire(t *testing.T) {
	l, err := LoadBuiltin("big-picture")
	if err != nil {
		t.Fatal(err)
	}
	text := FormatQuestionnaire(l, l.Questions(0)[:2])
	checks := []string{
		"## Lens: Big Picture",
		"### Scale",
		"- 4: Almost always",
		"1. [b01]",
		"Measures: North star + next step",
	}
	for _, want := range checks {
		if !strings.Contains(text, want) {
			t.Errorf("questionnaire missing %q", want)
		}
	}
}
