package schema

import (
	"strings"
	"testing"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

func validLens() *lens.Lens {
	return &lens.Lens{
		Name: "test",
		Variables: []lens.Variable{
			{Name: "Clarity", Importance: 1.1},
			{Name: "Execution", Importance: 1.2},
		},
		Bank: []assess.Question{
			{ID: "q1", Text: "How clear?", Variable: "Clarity", Weight: 1.0},
			{ID: "q2", Text: "How often?", Variable: "Execution", Weight: 1.2, Reverse: true},
		},
	}
}

func TestValidateBankValid(t *testing.T) {
	if errs := ValidateBank(validLens()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateBuiltins(t *testing.T) {
	names, err := lens.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		l, err := lens.LoadBuiltin(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, e := range ValidateBank(l) {
			t.Errorf("%s: %s", name, e)
		}
	}
}

func TestValidateBankErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*lens.Lens)
		path   string
	}{
		{"missing name", func(l *lens.Lens) { l.Name = "" }, "name"},
		{"duplicate id", func(l *lens.Lens) { l.Bank[1].ID = "q1" }, "questions[1].id"},
		{"empty text", func(l *lens.Lens) { l.Bank[0].Text = "" }, "questions[0].text"},
		{"zero weight", func(l *lens.Lens) { l.Bank[0].Weight = 0 }, "questions[0].weight"},
		{"undeclared variable", func(l *lens.Lens) { l.Bank[1].Variable = "Mystery" }, "questions[1].variable"},
		{"bad importance", func(l *lens.Lens) { l.Variables[0].Importance = -1 }, "variables[0].importance"},
		{"duplicate variable", func(l *lens.Lens) { l.Variables[1].Name = "Clarity" }, "variables[1].name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLens()
			tt.modify(l)
			errs := ValidateBank(l)
			found := false
			for _, e := range errs {
				if e.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error at %s, got %v", tt.path, errs)
			}
		})
	}
}

func TestValidateAnswers(t *testing.T) {
	qs := validLens().Bank
	errs := ValidateAnswers(qs, assess.Answers{"q1": 4, "q2": 7, "zz": 1})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Path != "answers.q2" || !strings.Contains(errs[0].Message, "between 0 and 4") {
		t.Errorf("unexpected first error: %s", errs[0])
	}
	if errs[1].Path != "answers.zz" {
		t.Errorf("unexpected second error: %s", errs[1])
	}
}

func TestValidateAnswersEmpty(t *testing.T) {
	if errs := ValidateAnswers(validLens().Bank, nil); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{"answers.q1", "required"}
	if e.Error() != "answers.q1: required" {
		t.Errorf("Error() = %q", e.Error())
	}
}
