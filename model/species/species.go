// Package species implements descriptive templates (biology, culture)
// attached to an entity.
package species

import (
	"fmt"
	"strings"
)

// Species describes a kind of creature. Zero-valued optional fields are unset.
type Species struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Lifespan    int      `json:"lifespan,omitempty" yaml:"lifespan,omitempty"` // years
	Habitat     string   `json:"habitat,omitempty" yaml:"habitat,omitempty"`
	Abilities   []string `json:"abilities,omitempty" yaml:"abilities,omitempty"`
}

// New creates a species with only a name set.
func New(name string) *Species {
	return &Species{Name: name}
}

// SetName renames the species.
func (s *Species) SetName(name string) {
	s.Name = name
}

// SetDescription replaces the description.
func (s *Species) SetDescription(description string) {
	s.Description = description
}

// SetLifespan sets the typical lifespan in years. Zero means unset.
func (s *Species) SetLifespan(years int) {
	s.Lifespan = years
}

// SetHabitat sets where the species usually lives.
func (s *Species) SetHabitat(habitat string) {
	s.Habitat = habitat
}

// AddAbility appends an ability. Duplicates are kept.
func (s *Species) AddAbility(ability string) {
	s.Abilities = append(s.Abilities, ability)
}

// Clone returns a deep copy so templates are never shared between entities.
func (s *Species) Clone() *Species {
	c := *s
	c.Abilities = append([]string(nil), s.Abilities...)
	return &c
}

// Details summarises the descriptive fields, skipping the unset ones.
func (s *Species) Details() string {
	parts := []string{s.Name}
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	if s.Lifespan > 0 {
		parts = append(parts, fmt.Sprintf("Lifespan: %d years", s.Lifespan))
	}
	if s.Habitat != "" {
		parts = append(parts, "Habitat: "+s.Habitat)
	}
	if len(s.Abilities) > 0 {
		parts = append(parts, "Abilities: "+strings.Join(s.Abilities, ", "))
	}
	return strings.Join(parts, ". ") + "."
}

// String returns the species name.
func (s *Species) String() string {
	return s.Name
}
