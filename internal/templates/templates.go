// Package templates provides the empty records new drafts start from.
package templates

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/valuator/internal/models"
)

//go:embed empty.yaml
var defaultYAML []byte

// Set holds the canonical empty valuation and property. It is never mutated
// after loading; callers always receive copies.
type Set struct {
	valuation models.Valuation
	property  models.Property
}

type document struct {
	Property  models.Property  `yaml:"property"`
	Valuation models.Valuation `yaml:"valuation"`
}

// Load parses a template document.
func Load(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	doc.Valuation.ID = ""
	doc.Valuation.UserID = ""
	doc.Valuation.Property = doc.Property
	return &Set{valuation: doc.Valuation, property: doc.Property}, nil
}

// LoadFile reads templates from path. An empty path returns the built-in set.
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return Load(data)
}

// Default returns the built-in templates.
func Default() *Set {
	set, err := Load(defaultYAML)
	if err != nil {
		panic(err)
	}
	return set
}

// EmptyValuation returns a fresh deep copy of the empty valuation.
func (s *Set) EmptyValuation() *models.Valuation {
	return s.valuation.Clone()
}

// EmptyProperty returns a copy of the empty property.
func (s *Set) EmptyProperty() models.Property {
	return s.property
}
