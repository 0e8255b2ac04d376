package stat

import (
	"errors"
	"testing"
)

func TestNew_DefaultsToZero(t *testing.T) {
	s := New("Strength")
	if s.Get() != 0 {
		t.Errorf("expected 0, got %d", s.Get())
	}
	if s.Name != "Strength" {
		t.Errorf("expected name Strength, got %q", s.Name)
	}
}

func TestModifyValue_AddsDelta(t *testing.T) {
	tests := []struct {
		start int
		delta int
		want  int
	}{
		{15, 2, 17},
		{15, -3, 12},
		{0, 5, 5},
		{3, -10, -7},
	}
	for _, tt := range tests {
		s := New("Dexterity")
		s.SetValue(tt.start)
		s.ModifyValue(tt.delta)
		if got := s.Get(); got != tt.want {
			t.Errorf("%d%+d = %d, want %d", tt.start, tt.delta, got, tt.want)
		}
	}
}

func TestModifyValue_UnsetTreatedAsZero(t *testing.T) {
	s := &Stat{Name: "Luck"}
	s.ModifyValue(4)
	if s.Get() != 4 {
		t.Errorf("expected 4, got %d", s.Get())
	}
}

func TestSetDescription_AssignsParameter(t *testing.T) {
	s := New("Wisdom")
	s.SetDescription("Perception and insight.")
	if s.Description != "Perception and insight." {
		t.Errorf("description = %q", s.Description)
	}
	s.SetName("Wis")
	if s.Name != "Wis" {
		t.Errorf("name = %q", s.Name)
	}
}

func TestModifier_RawByDefault(t *testing.T) {
	s := New("Speed")
	s.SetValue(30)
	if got := s.Modifier(); got != 30 {
		t.Errorf("expected raw modifier 30, got %d", got)
	}
}

func TestModifier_AbilityRule(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{20, 5},
		{9, -1},
		{8, -1},
		{7, -2},
		{1, -5},
	}
	for _, tt := range tests {
		s := New("Strength")
		if err := s.SetRule(RuleAbility); err != nil {
			t.Fatalf("SetRule: %v", err)
		}
		s.SetValue(tt.value)
		if got := s.Modifier(); got != tt.want {
			t.Errorf("ability modifier of %d = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestSetRule_Unknown(t *testing.T) {
	s := New("Charisma")
	err := s.SetRule("no_such_rule")
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if s.Rule != "" {
		t.Errorf("rule should be unchanged, got %q", s.Rule)
	}
}

func TestRegisterRule_Custom(t *testing.T) {
	RegisterRule("percentile", func(v int) int { return v / 10 })
	s := New("Sanity")
	if err := s.SetRule("percentile"); err != nil {
		t.Fatalf("SetRule: %v", err)
	}
	s.SetValue(65)
	if got := s.Modifier(); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestString(t *testing.T) {
	s := New("Strength")
	s.SetRule(RuleAbility)
	s.SetValue(15)
	if got := s.String(); got != "Strength 15 (+2)" {
		t.Errorf("String() = %q", got)
	}
}
