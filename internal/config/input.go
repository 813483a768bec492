package config

import (
	"fmt"
	"os"

	"github.com/mapleplan/mapleplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// IntakeParser loads raw intake documents from disk. YAML and JSON both
// parse; JSON is a YAML subset.
type IntakeParser struct{}

// NewIntakeParser creates a new intake parser.
func NewIntakeParser() *IntakeParser {
	return &IntakeParser{}
}

// LoadFromFile reads an intake document. Structural gaps are fine, the
// normalizer absorbs them, so the only errors here are unreadable files
// and documents that are not a mapping at all.
func (p *IntakeParser) LoadFromFile(filename string) (domain.RawIntake, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RawIntake{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return p.Parse(data)
}

// Parse decodes intake bytes.
func (p *IntakeParser) Parse(data []byte) (domain.RawIntake, error) {
	var intake domain.RawIntake
	if err := yaml.Unmarshal(data, &intake); err != nil {
		return domain.RawIntake{}, fmt.Errorf("failed to parse intake: %w", err)
	}
	return intake, nil
}
