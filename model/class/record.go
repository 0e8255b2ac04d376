package class

import (
	"errors"
	"fmt"
)

// ErrUnknownProgression is returned when a record names an unregistered progression.
var ErrUnknownProgression = errors.New("unknown progression")

// Record is the serializable form of a Class. The progression is stored by ID.
type Record struct {
	Name        string `json:"name" yaml:"name"`
	Level       int    `json:"level" yaml:"level"`
	Klasse      int    `json:"klasse,omitempty" yaml:"klasse,omitempty"`
	Subklasse   int    `json:"subklasse,omitempty" yaml:"subklasse,omitempty"`
	Classtype   int    `json:"classtype,omitempty" yaml:"classtype,omitempty"`
	Progression string `json:"progression" yaml:"progression"`
}

func ToRecord(c *Class) Record {
	return Record{
		Name:        c.Name,
		Level:       c.Level,
		Klasse:      c.Klasse,
		Subklasse:   c.Subklasse,
		Classtype:   c.Classtype,
		Progression: c.Progression.ID(),
	}
}

// FromRecord resolves the progression through the registry.
func FromRecord(r Record) (*Class, error) {
	p, ok := Lookup(r.Progression)
	if !ok {
		return nil, fmt.Errorf("class %q: %w %q", r.Name, ErrUnknownProgression, r.Progression)
	}
	c := New(r.Name, p)
	c.Level = r.Level
	c.Klasse = r.Klasse
	c.Subklasse = r.Subklasse
	c.Classtype = r.Classtype
	return c, nil
}
