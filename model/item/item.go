// Package item implements possessions: a shared Base carrying the common
// fields and sub-inventory, and named variants (Weapon, Armor, Potion,
// Container, Trinket) that supply the use/details/proficiency behaviour.
package item

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by item operations.
var (
	ErrCapacity      = errors.New("sub-inventory is full")
	ErrCycle         = errors.New("item cannot contain itself")
	ErrInvalidWeight = errors.New("weight must not be negative")
	ErrBroken        = errors.New("item is broken")
	ErrDepleted      = errors.New("item has no charges left")
	ErrNoTarget      = errors.New("item needs a target")
	ErrUnknownKind   = errors.New("unknown item kind")
)

// Kind names a concrete item variant.
type Kind string

// Known kinds.
const (
	KindWeapon    Kind = "weapon"
	KindArmor     Kind = "armor"
	KindPotion    Kind = "potion"
	KindContainer Kind = "container"
	KindTrinket   Kind = "trinket"
)

// Slot is where an item is worn or wielded. Empty means not equippable.
type Slot string

// Known slots.
const (
	SlotNone     Slot = ""
	SlotMainHand Slot = "main_hand"
	SlotOffHand  Slot = "off_hand"
	SlotHead     Slot = "head"
	SlotBody     Slot = "body"
	SlotFeet     Slot = "feet"
	SlotNeck     Slot = "neck"
	SlotRing     Slot = "ring"
	SlotBack     Slot = "back"
)

// Target is what an item acts upon when used.
type Target interface {
	// ModifyResource adds delta to the named resource and returns the new amount.
	ModifyResource(name string, delta int) int
}

// Item is the capability set every variant implements.
type Item interface {
	Core() *Base
	Kind() Kind
	// Use applies the item's effect. target may be nil.
	Use(target Target) (string, error)
	Details() string
	// CheckProficiency reports whether a wielder with the given ability
	// or proficiency tag can use the item effectively.
	CheckProficiency(ability string) bool
}

// Base holds the fields shared by all items.
type Base struct {
	Name              string
	Description       string
	Weight            float64
	Value             int // may go negative
	Durability        int
	Resources         []string
	Subinventory      []Item
	SubinventoryLimit int // 0 means unlimited
	Slot              Slot
	Proficiency       string
}

// Core returns the shared fields. Variants get it by embedding Base.
func (b *Base) Core() *Base {
	return b
}

// ModifyValue adds delta to the value. There is no floor.
func (b *Base) ModifyValue(delta int) {
	b.Value += delta
}

// SetName renames the item.
func (b *Base) SetName(name string) {
	b.Name = name
}

// SetDescription replaces the description.
func (b *Base) SetDescription(description string) {
	b.Description = description
}

// SetWeight rejects negative weights.
func (b *Base) SetWeight(w float64) error {
	if w < 0 {
		return fmt.Errorf("%s: %w", b.Name, ErrInvalidWeight)
	}
	b.Weight = w
	return nil
}

// AddResource appends a resource tag (e.g. "arrows") the item consumes or provides.
func (b *Base) AddResource(name string) {
	b.Resources = append(b.Resources, name)
}

// AddToSubinventory appends it to the sub-inventory. It fails with
// ErrCapacity once the limit is reached and with ErrCycle if it would
// end up containing b.
func (b *Base) AddToSubinventory(it Item) error {
	if b.SubinventoryLimit > 0 && len(b.Subinventory) >= b.SubinventoryLimit {
		return fmt.Errorf("%s (limit %d): %w", b.Name, b.SubinventoryLimit, ErrCapacity)
	}
	if it.Core() == b || contains(it, b) {
		return fmt.Errorf("%s into %s: %w", it.Core().Name, b.Name, ErrCycle)
	}
	b.Subinventory = append(b.Subinventory, it)
	return nil
}

// TotalWeight is the item's own weight plus everything nested inside it.
func (b *Base) TotalWeight() float64 {
	w := b.Weight
	for _, sub := range b.Subinventory {
		w += sub.Core().TotalWeight()
	}
	return w
}

func contains(it Item, b *Base) bool {
	for _, sub := range it.Core().Subinventory {
		if sub.Core() == b || contains(sub, b) {
			return true
		}
	}
	return false
}

// Find returns the first item named name (case-insensitive), searching
// sub-inventories depth first.
func Find(items []Item, name string) (Item, bool) {
	for _, it := range items {
		if strings.EqualFold(it.Core().Name, name) {
			return it, true
		}
		if found, ok := Find(it.Core().Subinventory, name); ok {
			return found, true
		}
	}
	return nil, false
}

// details renders the lines common to all variants.
func (b *Base) details(kind Kind, extra ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)", b.Name, kind)
	if b.Description != "" {
		sb.WriteString(": " + b.Description)
	}
	for _, e := range extra {
		sb.WriteString(" " + e)
	}
	fmt.Fprintf(&sb, " Weight %g, value %d", b.Weight, b.Value)
	if b.Durability > 0 {
		fmt.Fprintf(&sb, ", durability %d", b.Durability)
	}
	sb.WriteString(".")
	if b.Slot != SlotNone {
		fmt.Fprintf(&sb, " Slot: %s.", b.Slot)
	}
	if b.Proficiency != "" {
		fmt.Fprintf(&sb, " Requires %s.", b.Proficiency)
	}
	if len(b.Subinventory) > 0 {
		fmt.Fprintf(&sb, " Holds %d item(s).", len(b.Subinventory))
	}
	return sb.String()
}

// proficient implements the shared rule: no requirement, or a matching tag.
func (b *Base) proficient(ability string) bool {
	return b.Proficiency == "" || strings.EqualFold(b.Proficiency, ability)
}
