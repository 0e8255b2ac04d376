package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidRecord     = errors.New("invalid entity record")
)

// Format names a dump encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text" // dump only: the String() summary
)

// Structured reports whether f can be loaded back.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Record is the structured encoding of an Entity.
type Record struct {
	ID          string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Stats       []stat.Stat      `json:"stats,omitempty" yaml:"stats,omitempty"`
	Class       *class.Record    `json:"class,omitempty" yaml:"class,omitempty"`
	Species     *species.Species `json:"species,omitempty" yaml:"species,omitempty"`
	Actions     []types.Action   `json:"actions,omitempty" yaml:"actions,omitempty"`
	Inventory   []item.Record    `json:"inventory,omitempty" yaml:"inventory,omitempty"`
	Resources   []types.Resource `json:"resources,omitempty" yaml:"resources,omitempty"`
	Features    []types.Feature  `json:"features,omitempty" yaml:"features,omitempty"`
}

// ToRecord snapshots e. The record shares no memory with e.
func ToRecord(e *Entity) Record {
	r := Record{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Tags:        append([]string(nil), e.Tags...),
		Actions:     append([]types.Action(nil), e.Actions...),
		Resources:   append([]types.Resource(nil), e.Resources...),
		Features:    append([]types.Feature(nil), e.Features...),
	}
	for _, s := range e.Stats {
		r.Stats = append(r.Stats, *s)
	}
	if e.Class != nil {
		cr := class.ToRecord(e.Class)
		r.Class = &cr
	}
	if e.Species != nil {
		r.Species = e.Species.Clone()
	}
	for _, it := range e.Inventory {
		r.Inventory = append(r.Inventory, item.ToRecord(it))
	}
	return r
}

// FromRecord builds a new Entity. A record without an ID gets a fresh one.
func FromRecord(r Record) (*Entity, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	e := &Entity{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Tags:        append([]string(nil), r.Tags...),
		Actions:     append([]types.Action(nil), r.Actions...),
		Resources:   append([]types.Resource(nil), r.Resources...),
		Features:    append([]types.Feature(nil), r.Features...),
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	for _, sr := range r.Stats {
		if sr.Name == "" {
			return nil, fmt.Errorf("%w: stat without a name", ErrInvalidRecord)
		}
		s := stat.New(sr.Name)
		s.Value = sr.Value
		s.Description = sr.Description
		if err := s.SetRule(sr.Rule); err != nil {
			return nil, err
		}
		e.Stats = append(e.Stats, s)
	}
	if r.Class != nil {
		c, err := class.FromRecord(*r.Class)
		if err != nil {
			return nil, err
		}
		e.Class = c
	}
	if r.Species != nil {
		e.Species = r.Species.Clone()
	}
	for _, ir := range r.Inventory {
		it, err := item.FromRecord(ir)
		if err != nil {
			return nil, err
		}
		e.Inventory = append(e.Inventory, it)
	}
	return e, nil
}

// Dump encodes e. JSON and YAML are structured and round-trip through
// Load; any other format yields the free-form summary.
func (e *Entity) Dump(format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(ToRecord(e), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding %s as json: %w", e.Name, err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(ToRecord(e))
		if err != nil {
			return "", fmt.Errorf("encoding %s as yaml: %w", e.Name, err)
		}
		return string(data), nil
	default:
		return e.String(), nil
	}
}

// Decode parses data into a new Entity.
func Decode(data string, format Format) (*Entity, error) {
	var r Record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return FromRecord(r)
}

// Load replaces the whole state of e with the decoded data. On any error
// e is left untouched.
func (e *Entity) Load(data string, format Format) error {
	fresh, err := Decode(data, format)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}
