// Package catalog holds immutable content definitions and hands out fresh,
// unshared model values built from them.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
)

// ErrNotFound is returned when an ID is not defined.
var ErrNotFound = errors.New("not defined")

// Meta describes the content pack.
type Meta struct {
	Title   string
	Author  string
	Version string
	Start   string // entity template the session starts with
}

// Catalog maps IDs to definitions.
type Catalog struct {
	Meta     Meta
	Classes  map[string]class.Record
	Species  map[string]species.Species
	Items    map[string]item.Record
	Entities map[string]entity.Record
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		Classes:  map[string]class.Record{},
		Species:  map[string]species.Species{},
		Items:    map[string]item.Record{},
		Entities: map[string]entity.Record{},
	}
}

func (c *Catalog) NewClass(id string) (*class.Class, error) {
	r, ok := c.Classes[id]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", id, ErrNotFound)
	}
	return class.FromRecord(r)
}

func (c *Catalog) NewSpecies(id string) (*species.Species, error) {
	s, ok := c.Species[id]
	if !ok {
		return nil, fmt.Errorf("species %q: %w", id, ErrNotFound)
	}
	return s.Clone(), nil
}

func (c *Catalog) NewItem(id string) (item.Item, error) {
	r, ok := c.Items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return item.FromRecord(r)
}

// NewEntity builds an entity from a template. Every call yields a new ID.
func (c *Catalog) NewEntity(id string) (*entity.Entity, error) {
	r, ok := c.Entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %q: %w", id, ErrNotFound)
	}
	r.ID = ""
	return entity.FromRecord(r)
}

func (c *Catalog) ItemIDs() []string   { return sortedKeys(c.Items) }
func (c *Catalog) EntityIDs() []string { return sortedKeys(c.Entities) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
