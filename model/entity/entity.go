// Package entity implements the aggregate root of the character model: an
// Entity owns its class, species, stats, inventory, actions and resources.
package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

var (
	// ErrNoClass is returned by LevelUp when no class is set.
	ErrNoClass = errors.New("entity has no class")
	// ErrItemAbsent is returned when a named item is not carried.
	ErrItemAbsent = errors.New("item not carried")
)

// Entity is a character, creature or other actor.
type Entity struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Stats       []*stat.Stat
	Class       *class.Class
	Species     *species.Species
	Actions     []types.Action
	Inventory   []item.Item
	Resources   []types.Resource
	Features    []types.Feature
}

// New creates an entity with a fresh ID.
func New(name, description string) *Entity {
	return &Entity{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
}

// GetName returns the display name.
func (e *Entity) GetName() string {
	return e.Name
}

// GetDescription returns the free-form description.
func (e *Entity) GetDescription() string {
	return e.Description
}

// AddTag appends a tag. Tags also count as proficiencies.
func (e *Entity) AddTag(tag string) {
	e.Tags = append(e.Tags, tag)
}

// AddStat appends s. Stat names are not required to be unique; Stat
// returns the first match.
func (e *Entity) AddStat(s *stat.Stat) {
	e.Stats = append(e.Stats, s)
}

// Stat looks a stat up by name, case-insensitively.
func (e *Entity) Stat(name string) (*stat.Stat, bool) {
	for _, s := range e.Stats {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return nil, false
}

// SetClass attaches c. The entity owns it from now on.
func (e *Entity) SetClass(c *class.Class) {
	e.Class = c
}

// SetSpecies attaches s. The entity owns it from now on.
func (e *Entity) SetSpecies(s *species.Species) {
	e.Species = s
}

func (e *Entity) AddAction(a types.Action) {
	e.Actions = append(e.Actions, a)
}

func (e *Entity) AddItem(it item.Item) {
	e.Inventory = append(e.Inventory, it)
}

// FindItem searches the inventory, including nested sub-inventories.
func (e *Entity) FindItem(name string) (item.Item, bool) {
	return item.Find(e.Inventory, name)
}

// TakeItem removes a top-level inventory item by name and returns it.
func (e *Entity) TakeItem(name string) (item.Item, error) {
	for i, it := range e.Inventory {
		if strings.EqualFold(it.Core().Name, name) {
			e.Inventory = append(e.Inventory[:i], e.Inventory[i+1:]...)
			return it, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrItemAbsent)
}

// CarriedWeight sums the inventory including nested items.
func (e *Entity) CarriedWeight() float64 {
	var w float64
	for _, it := range e.Inventory {
		w += it.Core().TotalWeight()
	}
	return w
}

func (e *Entity) AddResource(r types.Resource) {
	e.Resources = append(e.Resources, r)
}

// Resource returns the named resource's amount.
func (e *Entity) Resource(name string) (int, bool) {
	for _, r := range e.Resources {
		if strings.EqualFold(r.Name, name) {
			return r.Amount, true
		}
	}
	return 0, false
}

// ModifyResource adds delta to the named resource, creating it at zero
// first if it does not exist, and returns the new amount.
func (e *Entity) ModifyResource(name string, delta int) int {
	for i := range e.Resources {
		if strings.EqualFold(e.Resources[i].Name, name) {
			e.Resources[i].Amount += delta
			return e.Resources[i].Amount
		}
	}
	e.Resources = append(e.Resources, types.Resource{Name: name, Amount: delta})
	return delta
}

// UseItem uses a carried item on target. A nil target means the entity itself.
func (e *Entity) UseItem(name string, target item.Target) (string, error) {
	it, ok := e.FindItem(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrItemAbsent)
	}
	if target == nil {
		target = e
	}
	return it.Use(target)
}

// classtypeProficiencies are the proficiency tags a class grants by classtype.
var classtypeProficiencies = map[int][]string{
	types.ClasstypeCaster:  {"arcane"},
	types.ClasstypeMartial: {"martial", "heavy"},
	types.ClasstypeHybrid:  {"martial", "arcane"},
}

// Proficiencies returns the entity's tags followed by the tags its class
// grants: the class name and the classtype's tags.
func (e *Entity) Proficiencies() []string {
	out := append([]string(nil), e.Tags...)
	if e.Class != nil {
		out = append(out, strings.ToLower(e.Class.Name))
		out = append(out, classtypeProficiencies[e.Class.Classtype]...)
	}
	return out
}

// Proficient reports whether any of the entity's proficiencies satisfies it.
func (e *Entity) Proficient(it item.Item) bool {
	if it.CheckProficiency("") {
		return true
	}
	for _, p := range e.Proficiencies() {
		if it.CheckProficiency(p) {
			return true
		}
	}
	return false
}

// LevelUp levels the entity's class, which calls back into
// SpecialLevelUp and AddFeature.
func (e *Entity) LevelUp() error {
	if e.Class == nil {
		return fmt.Errorf("%s: %w", e.Name, ErrNoClass)
	}
	e.Class.LevelUp(e)
	logger.Log.WithFields(logrus.Fields{
		"entity": e.Name,
		"class":  e.Class.Name,
		"level":  e.Class.Level,
	}).Debug("level up")
	return nil
}

// SpecialLevelUp grants the per-level resources of a classtype.
func (e *Entity) SpecialLevelUp(classtype int) {
	switch classtype {
	case types.ClasstypeCaster:
		e.ModifyResource("spell_slots", 1)
	case types.ClasstypeMartial:
		e.ModifyResource("stamina", 1)
	case types.ClasstypeHybrid:
		e.ModifyResource("spell_slots", 1)
		e.ModifyResource("stamina", 1)
	default:
		logger.Log.WithFields(logrus.Fields{
			"entity":    e.Name,
			"classtype": classtype,
		}).Warn("unknown classtype, no special level up")
	}
}

// AddFeature records features granted by the class.
func (e *Entity) AddFeature(features ...types.Feature) {
	e.Features = append(e.Features, features...)
}

// String is the free-form summary, also used as the fallback dump format.
func (e *Entity) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", e.Name, e.Description)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Class != nil {
		fmt.Fprintf(&sb, "Class: %s\n", e.Class)
	}
	if e.Species != nil {
		fmt.Fprintf(&sb, "Species: %s\n", e.Species)
	}
	if len(e.Stats) > 0 {
		parts := make([]string, len(e.Stats))
		for i, s := range e.Stats {
			parts[i] = s.String()
		}
		fmt.Fprintf(&sb, "Stats: %s\n", strings.Join(parts, ", "))
	}
	if len(e.Resources) > 0 {
		parts := make([]string, len(e.Resources))
		for i, r := range e.Resources {
			parts[i] = fmt.Sprintf("%s %d", r.Name, r.Amount)
		}
		fmt.Fprintf(&sb, "Resources: %s\n", strings.Join(parts, ", "))
	}
	if len(e.Actions) > 0 {
		parts := make([]string, len(e.Actions))
		for i, a := range e.Actions {
			parts[i] = a.Name
		}
		fmt.Fprintf(&sb, "Actions: %s\n", strings.Join(parts, ", "))
	}
	if len(e.Inventory) > 0 {
		parts := make([]string, len(e.Inventory))
		for i, it := range e.Inventory {
			parts[i] = it.Core().Name
		}
		fmt.Fprintf(&sb, "Inventory: %s\n", strings.Join(parts, ", "))
	}
	if len(e.Features) > 0 {
		parts := make([]string, len(e.Features))
		for i, f := range e.Features {
			parts[i] = f.Name
		}
		fmt.Fprintf(&sb, "Features: %s\n", strings.Join(parts, ", "))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
