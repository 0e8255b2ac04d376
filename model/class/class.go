// Package class implements progression templates: a Class levels up the
// character it is attached to and grants the features its Progression
// unlocks at each level.
package class

import (
	"fmt"

	"github.com/nathoo/rpgkit/types"
)

// Character is what a class levels. Entities implement it.
type Character interface {
	SpecialLevelUp(classtype int)
	AddFeature(features ...types.Feature)
}

// Progression decides which features a class grants. klasse selects a
// branch (archetype) within the progression.
type Progression interface {
	ID() string
	Features(klasse, level int) []types.Feature
}

// Class is a leveled progression template.
type Class struct {
	Name        string
	Level       int
	Klasse      int
	Subklasse   int
	Classtype   int
	Progression Progression
}

// New creates a level 0 class. It panics if p is nil: a class without a
// progression cannot grant features and is a programming error.
func New(name string, p Progression) *Class {
	if p == nil {
		panic(fmt.Sprintf("class %q: nil progression", name))
	}
	return &Class{Name: name, Progression: p}
}

// LevelUp raises the level by one, signals the special level-up for
// non-zero classtypes, then grants the features of the new level.
func (c *Class) LevelUp(ch Character) {
	c.Level++
	if c.Classtype != types.ClasstypeNone {
		ch.SpecialLevelUp(c.Classtype)
	}
	ch.AddFeature(c.Progression.Features(c.Klasse, c.Level)...)
}

// Clone returns a copy. Progressions are immutable and stay shared.
func (c *Class) Clone() *Class {
	cp := *c
	return &cp
}

func (c *Class) String() string {
	return fmt.Sprintf("%s level %d", c.Name, c.Level)
}
