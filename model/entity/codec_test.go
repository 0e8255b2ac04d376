package entity

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

// fullEntity builds an entity exercising every field.
func fullEntity() *Entity {
	e := New("Aria", "A half-elf ranger.")
	e.AddTag("player")

	str := stat.New("Strength")
	str.SetValue(12)
	str.SetRule(stat.RuleAbility)
	dex := stat.New("Dexterity")
	dex.SetValue(17)
	dex.SetDescription("Agility and reflexes.")
	e.AddStat(str)
	e.AddStat(dex)

	c := class.New("Fighter", class.Fighter)
	c.Klasse = 1
	c.Classtype = types.ClasstypeMartial
	e.SetClass(c)

	sp := species.New("Half-Elf")
	sp.SetLifespan(180)
	sp.AddAbility("Darkvision")
	e.SetSpecies(sp)

	e.AddAction(types.Action{Name: "Shoot", Description: "Fire an arrow."})
	e.AddResource(types.Resource{Name: "hp", Amount: 11})

	bow := item.NewWeapon("Longbow", 8)
	bow.DamageType = "piercing"
	bow.Proficiency = "martial"
	quiver := item.NewContainer("Quiver", 2)
	quiver.AddToSubinventory(item.NewTrinket("Silver Arrow"))
	e.AddItem(bow)
	e.AddItem(quiver)
	e.AddItem(item.NewPotion("Healing Draught", 8))

	e.LevelUp()
	return e
}

func TestDumpLoad_HeroStrength(t *testing.T) {
	e := New("Hero", "A hero.")
	s := stat.New("Strength")
	s.SetValue(15)
	e.AddStat(s)

	data, err := e.Dump(FormatJSON)
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	fresh := &Entity{}
	if err := fresh.Load(data, FormatJSON); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fresh.Name != "Hero" || fresh.Description != "A hero." {
		t.Errorf("name/description = %q/%q", fresh.Name, fresh.Description)
	}
	if len(fresh.Stats) != 1 {
		t.Fatalf("expected 1 stat, got %d", len(fresh.Stats))
	}
	if fresh.Stats[0].Name != "Strength" || fresh.Stats[0].Get() != 15 {
		t.Errorf("stat = %+v", fresh.Stats[0])
	}
}

func TestDumpLoad_FullRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			e := fullEntity()
			data, err := e.Dump(format)
			if err != nil {
				t.Fatalf("Dump failed: %v", err)
			}

			fresh := &Entity{}
			if err := fresh.Load(data, format); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(fresh, e) {
				t.Errorf("round trip mismatch\n got: %s\nwant: %s", fresh, e)
			}
		})
	}
}

func TestDump_JSONIsValid(t *testing.T) {
	data, err := fullEntity().Dump(FormatJSON)
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["name"] != "Aria" {
		t.Errorf("name = %v", raw["name"])
	}
	cls, _ := raw["class"].(map[string]any)
	if cls["progression"] != "fighter" {
		t.Errorf("class = %v", raw["class"])
	}
}

func TestDump_OtherFormatFallsBackToSummary(t *testing.T) {
	e := fullEntity()
	for _, format := range []Format{FormatText, "xml", ""} {
		got, err := e.Dump(format)
		if err != nil {
			t.Fatalf("Dump(%q): %v", format, err)
		}
		if got != e.String() {
			t.Errorf("Dump(%q) = %q, want summary", format, got)
		}
	}
}

func TestLoad_UnsupportedFormatLeavesStateUnchanged(t *testing.T) {
	e := fullEntity()
	before := ToRecord(e)

	data, _ := e.Dump(FormatJSON)
	err := e.Load(data, "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !reflect.DeepEqual(ToRecord(e), before) {
		t.Error("entity changed after failed load")
	}
	if err := e.Load(data, FormatText); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("text is dump-only, got %v", err)
	}
}

func TestLoad_DecodeErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"malformed", `{"name": `, nil},
		{"missing name", `{"description": "nameless"}`, ErrInvalidRecord},
		{"unknown item kind", `{"name": "X", "inventory": [{"kind": "scroll", "name": "Y"}]}`, item.ErrUnknownKind},
		{"unknown progression", `{"name": "X", "class": {"name": "Bard", "progression": "bard"}}`, class.ErrUnknownProgression},
		{"unknown stat rule", `{"name": "X", "stats": [{"name": "Luck", "value": 3, "rule": "tarot"}]}`, stat.ErrUnknownRule},
		{"over capacity", `{"name": "X", "inventory": [{"kind": "container", "name": "Pouch", "subinventory_limit": 1,
			"subinventory": [{"kind": "trinket", "name": "a"}, {"kind": "trinket", "name": "b"}]}]}`, item.ErrCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fullEntity()
			before := ToRecord(e)

			err := e.Load(tt.data, FormatJSON)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !reflect.DeepEqual(ToRecord(e), before) {
				t.Error("entity changed after failed load")
			}
		})
	}
}

func TestLoad_AssignsIDWhenMissing(t *testing.T) {
	e := &Entity{}
	if err := e.Load(`{"name": "Goblin", "description": "Small and mean."}`, FormatJSON); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestLoad_YAML(t *testing.T) {
	data := `
name: Grunk
description: An orc.
stats:
  - name: Strength
    value: 18
    rule: ability
class:
  name: Fighter
  level: 2
  progression: fighter
inventory:
  - kind: weapon
    name: Greataxe
    damage: 12
    durability: 40
`
	e := &Entity{}
	if err := e.Load(data, FormatYAML); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s, _ := e.Stat("Strength"); s.Modifier() != 4 {
		t.Errorf("modifier = %d, want 4", s.Modifier())
	}
	if e.Class.Level != 2 {
		t.Errorf("class = %s", e.Class)
	}
	w, ok := e.Inventory[0].(*item.Weapon)
	if !ok || w.Damage != 12 || w.Durability != 40 {
		t.Errorf("inventory[0] = %#v", e.Inventory[0])
	}
}

func TestLoad_DoesNotShareMemoryWithRecord(t *testing.T) {
	e := fullEntity()
	data, _ := e.Dump(FormatJSON)
	a, _ := Decode(data, FormatJSON)
	b, _ := Decode(data, FormatJSON)

	a.Species.AddAbility("Fey Ancestry")
	a.Class.Level = 10
	if len(b.Species.Abilities) != 1 || b.Class.Level != 1 {
		t.Error("decoded entities share state")
	}
	if !strings.Contains(data, `"progression": "fighter"`) {
		t.Errorf("expected progression in dump:\n%s", data)
	}
}
