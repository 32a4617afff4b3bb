// Package lens loads the built-in question banks and their lens language.
package lens

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/lenscheck/internal/assess"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ScaleLabels names each point of the 0-4 answer scale.
var ScaleLabels = map[int]string{
	0: "Not at all / Never",
	1: "Rarely",
	2: "Sometimes",
	3: "Often",
	4: "Almost always",
}

// Lens is a domain framing over the shared scoring variables.
type Lens struct {
	Name        string            `json:"name" yaml:"name"`
	Version     int               `json:"version" yaml:"version"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description"`
	Intro       string            `json:"intro,omitempty" yaml:"intro"`
	Variables   []Variable        `json:"variables" yaml:"variables"`
	Bank        []assess.Question `json:"questions" yaml:"questions"`
}

// Variable is a scoring category as this lens names it.
type Variable struct {
	Name       string  `json:"name" yaml:"name"`
	Importance float64 `json:"importance" yaml:"importance"`
	Label      string  `json:"label" yaml:"label"`
}

// LoadBuiltin loads a built-in lens by name.
func LoadBuiltin(name string) (*Lens, error) {
	filename := Normalize(name) + ".yaml"
	data, err := builtinFS.ReadFile("builtin/" + filename)
	if err != nil {
		return nil, fmt.Errorf("lens.LoadBuiltin: unknown lens %q: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a lens definition.
func Parse(data []byte) (*Lens, error) {
	var l Lens
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("lens.Parse: %w", err)
	}
	if l.Name == "" {
		return nil, fmt.Errorf("lens.Parse: missing name")
	}
	return &l, nil
}

// Normalize maps a display title such as "Big Picture" to its file name.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// List returns the names of all available built-in lenses, sorted.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Label translates a variable into this lens's language.
// Unknown variables are returned unchanged.
func (l *Lens) Label(variable string) string {
	for _, v := range l.Variables {
		if v.Name == variable && v.Label != "" {
			return v.Label
		}
	}
	return variable
}

// Importance returns the per-variable weights used for the overall score.
func (l *Lens) Importance() map[string]float64 {
	m := make(map[string]float64, len(l.Variables))
	for _, v := range l.Variables {
		m[v.Name] = v.Importance
	}
	return m
}

// VariableOrder returns the declared variable order.
func (l *Lens) VariableOrder() []string {
	order := make([]string, 0, len(l.Variables))
	for _, v := range l.Variables {
		order = append(order, v.Name)
	}
	return order
}

// Questions returns the bank, restricted to phase when phase > 0.
// A phase filter keeps every question up to and including that phase.
func (l *Lens) Questions(phase int) []assess.Question {
	if phase <= 0 {
		return append([]assess.Question(nil), l.Bank...)
	}
	var qs []assess.Question
	for _, q := range l.Bank {
		if q.Phase == 0 || q.Phase <= phase {
			qs = append(qs, q)
		}
	}
	return qs
}

// Question looks up a question by ID.
func (l *Lens) Question(id string) (assess.Question, bool) {
	for _, q := range l.Bank {
		if q.ID == id {
			return q, true
		}
	}
	return assess.Question{}, false
}

// FormatQuestionnaire renders the questions as a numbered Markdown list
// with the answer scale, suitable for filling in by hand.
func FormatQuestionnaire(l *Lens, qs []assess.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Lens: %s\n\n", l.Title)
	if l.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(l.Description))
	}

	b.WriteString("### Scale\n\n")
	for i := assess.MinAnswer; i <= assess.MaxAnswer; i++ {
		fmt.Fprintf(&b, "- %d: %s\n", i, ScaleLabels[i])
	}
	b.WriteString("\n### Questions\n\n")
	for i, q := range qs {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, q.ID, q.Text)
		fmt.Fprintf(&b, "   Measures: %s\n", l.Label(q.Variable))
	}
	return b.String()
}
