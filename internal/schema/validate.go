// Package schema validates lens banks and answer sheets.
package schema

import (
	"fmt"
	"sort"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateBank checks a lens definition for structural validity.
func ValidateBank(l *lens.Lens) []ValidationError {
	var errs []ValidationError

	if l.Name == "" {
		errs = append(errs, ValidationError{"name", "required"})
	}
	if len(l.Bank) == 0 {
		errs = append(errs, ValidationError{"questions", "at least one question required"})
	}

	declared := make(map[string]bool)
	for i, v := range l.Variables {
		prefix := fmt.Sprintf("variables[%d]", i)
		if v.Name == "" {
			errs = append(errs, ValidationError{prefix + ".name", "required"})
		} else if declared[v.Name] {
			errs = append(errs, ValidationError{prefix + ".name", fmt.Sprintf("duplicate variable: %q", v.Name)})
		}
		declared[v.Name] = true
		if v.Importance <= 0 {
			errs = append(errs, ValidationError{prefix + ".importance", "must be > 0"})
		}
	}

	ids := make(map[string]bool)
	for i, q := range l.Bank {
		prefix := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if ids[q.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", q.ID)})
		} else {
			ids[q.ID] = true
		}
		if q.Text == "" {
			errs = append(errs, ValidationError{prefix + ".text", "required"})
		}
		if q.Variable == "" {
			errs = append(errs, ValidationError{prefix + ".variable", "required"})
		} else if len(l.Variables) > 0 && !declared[q.Variable] {
			errs = append(errs, ValidationError{prefix + ".variable", fmt.Sprintf("undeclared variable: %q", q.Variable)})
		}
		if q.Weight <= 0 {
			errs = append(errs, ValidationError{prefix + ".weight", "must be > 0"})
		}
	}

	return errs
}

// ValidateAnswers checks answer values against the scale and the question list.
// Errors are ordered by question ID.
func ValidateAnswers(questions []assess.Question, answers assess.Answers) []ValidationError {
	var errs []ValidationError

	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		prefix := fmt.Sprintf("answers.%s", id)
		if !known[id] {
			errs = append(errs, ValidationError{prefix, "unknown question ID"})
			continue
		}
		a := answers[id]
		if a < assess.MinAnswer || a > assess.MaxAnswer {
			errs = append(errs, ValidationError{prefix, fmt.Sprintf("must be between %d and %d, got %d", assess.MinAnswer, assess.MaxAnswer, a)})
		}
	}

	return errs
}
