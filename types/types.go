// Package types defines the shared data records for rpgkit.
// It holds only type definitions, no logic or methods.
package types

// Command is the parsed representation of a session command.
type Command struct {
	Verb   string
	Object string // optional
	Target string // optional, text after the first preposition
	Amount string // optional trailing number: "3", "+2", "-1", "=15"
}

// Event is emitted after a command changes the active entity.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single session step.
type Result struct {
	Events []Event
	Output []string
}

// Action is something an entity can do. Immutable after construction.
type Action struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Resource is a named pool owned by an entity (hit points, spell slots, gold).
type Resource struct {
	Name   string `json:"name" yaml:"name"`
	Amount int    `json:"amount" yaml:"amount"`
}

// Feature is an unlockable granted by a class at a given level.
type Feature struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Level       int    `json:"level" yaml:"level"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"` // progression ID
}

// Classtype codes select the special level-up behaviour of a class.
const (
	ClasstypeNone    = 0
	ClasstypeCaster  = 1 // gains a spell slot per level
	ClasstypeMartial = 2 // gains stamina per level
	ClasstypeHybrid  = 3 // both
)
