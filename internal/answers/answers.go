// Package answers reads answer sheets from YAML or JSON.
package answers

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/lenscheck/internal/assess"
)

// Sheet is a loaded answer sheet with its metadata.
type Sheet struct {
	FilePath string         `yaml:"-"`
	Hash     string         `yaml:"-"`
	Lens     string         `yaml:"lens"`
	Answers  assess.Answers `yaml:"answers"`
}

// Load reads an answer sheet and computes its SHA-256 hash.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// Parse decodes a sheet. JSON input is accepted since it is valid YAML.
// A document without a top-level "answers" key is read as a bare
// question ID to answer mapping.
func Parse(data []byte) (*Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("answers.Parse: %w", err)
	}
	if s.Answers == nil && s.Lens == "" {
		var bare assess.Answers
		if err := yaml.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("answers.Parse: %w", err)
		}
		s.Answers = bare
	}
	if s.Answers == nil {
		s.Answers = assess.Answers{}
	}
	s.Hash = fmt.Sprintf("sha256:%x", sha256.Sum256(data))
	return &s, nil
}
