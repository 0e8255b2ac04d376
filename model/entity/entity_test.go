package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

func TestNew(t *testing.T) {
	e := New("Hero", "A hero.")
	if e.GetName() != "Hero" || e.GetDescription() != "A hero." {
		t.Errorf("name/description = %q/%q", e.GetName(), e.GetDescription())
	}
	if e.ID == "" {
		t.Error("expected an ID")
	}
	if other := New("Hero", "A hero."); other.ID == e.ID {
		t.Error("expected distinct IDs")
	}
}

func TestStat_LookupCaseInsensitive(t *testing.T) {
	e := New("Hero", "A hero.")
	s := stat.New("Strength")
	s.SetValue(15)
	e.AddStat(s)

	got, ok := e.Stat("strength")
	if !ok || got.Get() != 15 {
		t.Fatalf("Stat(strength) = %v, %v", got, ok)
	}
	if _, ok := e.Stat("Dexterity"); ok {
		t.Error("expected Dexterity to be missing")
	}
}

func TestModifyResource(t *testing.T) {
	e := New("Hero", "A hero.")
	e.AddResource(types.Resource{Name: "hp", Amount: 10})

	if got := e.ModifyResource("HP", -4); got != 6 {
		t.Errorf("hp = %d, want 6", got)
	}
	if got := e.ModifyResource("gold", 25); got != 25 {
		t.Errorf("gold = %d, want 25", got)
	}
	if amt, ok := e.Resource("gold"); !ok || amt != 25 {
		t.Errorf("Resource(gold) = %d, %v", amt, ok)
	}
	if len(e.Resources) != 2 {
		t.Errorf("expected 2 resources, got %v", e.Resources)
	}
}

func TestUseItem_DefaultsToSelf(t *testing.T) {
	e := New("Hero", "A hero.")
	e.AddResource(types.Resource{Name: "hp", Amount: 2})
	e.AddItem(item.NewPotion("Healing Draught", 8))

	if _, err := e.UseItem("healing draught", nil); err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	if hp, _ := e.Resource("hp"); hp != 10 {
		t.Errorf("hp = %d, want 10", hp)
	}
	if _, err := e.UseItem("Sword", nil); !errors.Is(err, ErrItemAbsent) {
		t.Errorf("expected ErrItemAbsent, got %v", err)
	}
}

func TestTakeItem(t *testing.T) {
	e := New("Hero", "A hero.")
	e.AddItem(item.NewTrinket("Coin"))
	e.AddItem(item.NewTrinket("Rope"))

	it, err := e.TakeItem("coin")
	if err != nil {
		t.Fatalf("TakeItem: %v", err)
	}
	if it.Core().Name != "Coin" || len(e.Inventory) != 1 {
		t.Errorf("took %q, inventory %d", it.Core().Name, len(e.Inventory))
	}
	if _, err := e.TakeItem("coin"); !errors.Is(err, ErrItemAbsent) {
		t.Errorf("expected ErrItemAbsent, got %v", err)
	}
}

func TestCarriedWeight(t *testing.T) {
	e := New("Hero", "A hero.")
	bag := item.NewContainer("Backpack", 0)
	bag.Weight = 2
	rope := item.NewTrinket("Rope")
	rope.Weight = 10
	bag.AddToSubinventory(rope)
	e.AddItem(bag)

	if got := e.CarriedWeight(); got != 12 {
		t.Errorf("carried = %g, want 12", got)
	}
}

func TestLevelUp_DelegatesToClass(t *testing.T) {
	e := New("Merlin", "A wizard.")
	c := class.New("Wizard", class.Wizard)
	c.Classtype = types.ClasstypeCaster
	e.SetClass(c)

	if err := e.LevelUp(); err != nil {
		t.Fatalf("LevelUp: %v", err)
	}
	if e.Class.Level != 1 {
		t.Errorf("level = %d", e.Class.Level)
	}
	if slots, _ := e.Resource("spell_slots"); slots != 1 {
		t.Errorf("spell_slots = %d, want 1", slots)
	}
	if len(e.Features) != 2 || e.Features[0].Name != "Spellcasting" {
		t.Errorf("features = %v", e.Features)
	}
}

func TestLevelUp_NoClass(t *testing.T) {
	e := New("Peasant", "Nobody in particular.")
	if err := e.LevelUp(); !errors.Is(err, ErrNoClass) {
		t.Fatalf("expected ErrNoClass, got %v", err)
	}
}

func TestSpecialLevelUp(t *testing.T) {
	e := New("Paladin", "Oathsworn.")
	e.SpecialLevelUp(types.ClasstypeHybrid)
	e.SpecialLevelUp(types.ClasstypeMartial)
	e.SpecialLevelUp(99)

	if slots, _ := e.Resource("spell_slots"); slots != 1 {
		t.Errorf("spell_slots = %d", slots)
	}
	if stamina, _ := e.Resource("stamina"); stamina != 2 {
		t.Errorf("stamina = %d", stamina)
	}
}

func TestString_Summary(t *testing.T) {
	e := New("Hero", "A hero.")
	s := stat.New("Strength")
	s.SetValue(15)
	e.AddStat(s)
	e.SetClass(class.New("Fighter", class.Fighter))
	e.SetSpecies(species.New("Human"))
	e.AddAction(types.Action{Name: "Attack", Description: "Swing a weapon."})
	e.AddItem(item.NewWeapon("Longsword", 8))
	e.AddResource(types.Resource{Name: "hp", Amount: 12})

	got := e.String()
	for _, want := range []string{
		"Hero: A hero.",
		"Class: Fighter level 0",
		"Species: Human",
		"Stats: Strength 15 (+15)",
		"Resources: hp 12",
		"Actions: Attack",
		"Inventory: Longsword",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
}

func TestProficient(t *testing.T) {
	e := New("Hero", "A hero.")
	sword := item.NewWeapon("Longsword", 8)
	sword.Proficiency = "martial"
	staff := item.NewWeapon("Staff", 6)
	staff.Proficiency = "arcane"
	dagger := item.NewWeapon("Dagger", 4)

	if e.Proficient(sword) {
		t.Error("classless entity should not be proficient with a martial weapon")
	}
	if !e.Proficient(dagger) {
		t.Error("items without a requirement are usable by anyone")
	}
	if !e.Proficient(item.NewPotion("Tonic", 2)) {
		t.Error("potions are always usable")
	}

	e.SetClass(class.New("Fighter", class.Fighter))
	e.Class.Classtype = types.ClasstypeMartial
	if !e.Proficient(sword) {
		t.Error("martial class should be proficient with a martial weapon")
	}
	if e.Proficient(staff) {
		t.Error("martial class should not be proficient with an arcane focus")
	}

	e.AddTag("Arcane")
	if !e.Proficient(staff) {
		t.Error("tags should count as proficiencies")
	}
}

func TestProficiencies_IncludesClassName(t *testing.T) {
	e := New("Hero", "A hero.")
	e.AddTag("player")
	e.SetClass(class.New("Wizard", class.Wizard))
	e.Class.Classtype = types.ClasstypeCaster

	got := strings.Join(e.Proficiencies(), ",")
	if got != "player,wizard,arcane" {
		t.Errorf("Proficiencies = %q", got)
	}
}
