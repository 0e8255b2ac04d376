// Package stat implements named numeric attributes with a derived modifier.
package stat

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRule is returned when a stat is bound to an unregistered modifier rule.
var ErrUnknownRule = errors.New("unknown modifier rule")

// Built-in modifier rules.
const (
	RuleRaw     = "raw"     // modifier equals the value
	RuleAbility = "ability" // d20-style: floor((value-10)/2)
)

var (
	rulesMu sync.RWMutex
	rules   = map[string]func(int) int{
		RuleRaw:     func(v int) int { return v },
		RuleAbility: abilityModifier,
	}
)

// RegisterRule makes a modifier rule available under name. Registering an
// existing name replaces it.
func RegisterRule(name string, fn func(value int) int) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	rules[name] = fn
}

// HasRule reports whether a rule is registered under name.
func HasRule(name string) bool {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	_, ok := rules[name]
	return ok
}

func abilityModifier(v int) int {
	d := v - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// Stat is a named integer attribute. The zero Value is the unset state.
type Stat struct {
	Name        string `json:"name" yaml:"name"`
	Value       int    `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Rule        string `json:"rule,omitempty" yaml:"rule,omitempty"` // empty means RuleRaw
}

// New creates a stat with value 0 and the raw modifier rule.
func New(name string) *Stat {
	return &Stat{Name: name}
}

// Get returns the current value.
func (s *Stat) Get() int {
	return s.Value
}

// SetValue replaces the value.
func (s *Stat) SetValue(v int) {
	s.Value = v
}

// ModifyValue adds delta to the value.
func (s *Stat) ModifyValue(delta int) {
	s.Value += delta
}

// SetName renames the stat.
func (s *Stat) SetName(name string) {
	s.Name = name
}

// SetDescription replaces the description.
func (s *Stat) SetDescription(description string) {
	s.Description = description
}

// SetRule binds the stat to a registered modifier rule.
func (s *Stat) SetRule(rule string) error {
	if rule != "" && !HasRule(rule) {
		return fmt.Errorf("stat %q: %w: %s", s.Name, ErrUnknownRule, rule)
	}
	s.Rule = rule
	return nil
}

// Modifier returns the value derived from Value by the stat's rule.
// A rule that was unregistered after binding falls back to the raw value.
func (s *Stat) Modifier() int {
	rule := s.Rule
	if rule == "" {
		rule = RuleRaw
	}
	rulesMu.RLock()
	fn, ok := rules[rule]
	rulesMu.RUnlock()
	if !ok {
		return s.Value
	}
	return fn(s.Value)
}

// String renders "Strength 15 (+2)".
func (s *Stat) String() string {
	return fmt.Sprintf("%s %d (%+d)", s.Name, s.Value, s.Modifier())
}
