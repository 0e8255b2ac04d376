package loader

import (
	"testing"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/stat"
)

// validCatalog returns a minimal valid catalog for testing.
func validCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Meta = catalog.Meta{Title: "Test", Start: "hero"}
	cat.Classes["fighter"] = class.Record{Name: "Fighter", Progression: "fighter"}
	cat.Entities["hero"] = entity.Record{
		Name:  "Hero",
		Class: &class.Record{Name: "Fighter", Progression: "fighter"},
	}
	return cat
}

func TestValidate_ValidCatalog(t *testing.T) {
	if err := validate(validCatalog(), nil, &ValidationError{}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_Default(t *testing.T) {
	if err := validate(catalog.Default(), nil, &ValidationError{}); err != nil {
		t.Fatalf("built-in catalog should validate: %v", err)
	}
}

func TestValidate_MissingStartEntity(t *testing.T) {
	cat := validCatalog()
	cat.Meta.Start = "nobody"

	err := validate(cat, nil, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for missing start entity")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	assertContains(t, ve.Errors, "start entity")
}

func TestValidate_EmptyTitle(t *testing.T) {
	cat := validCatalog()
	cat.Meta.Title = ""

	err := validate(cat, nil, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	assertContains(t, err.(*ValidationError).Errors, "title")
}

func TestValidate_Progression(t *testing.T) {
	cat := validCatalog()
	cat.Classes["druid"] = class.Record{Name: "Druid", Progression: "druid"}

	err := validate(cat, nil, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for unknown progression")
	}
	assertContains(t, err.(*ValidationError).Errors, "unknown progression")
}

func TestValidate_PackTableResolvesProgression(t *testing.T) {
	cat := validCatalog()
	cat.Classes["druid"] = class.Record{Name: "Druid", Progression: "druid"}
	tables := []*class.FeatureTable{{Key: "druid"}}

	ve := &ValidationError{}
	if err := validate(cat, tables, ve); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assertContains(t, ve.Warnings, "grants no features")
}

func TestValidate_BuiltinProgressionRedefined(t *testing.T) {
	cat := validCatalog()
	tables := []*class.FeatureTable{{Key: "wizard", Levels: class.Wizard.Levels}}

	err := validate(cat, tables, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for redefined built-in progression")
	}
	assertContains(t, err.(*ValidationError).Errors, `redefines the built-in "wizard"`)
}

func TestValidate_InvalidClasstype(t *testing.T) {
	cat := validCatalog()
	cat.Classes["odd"] = class.Record{Name: "Odd", Classtype: 7, Progression: "fighter"}

	err := validate(cat, nil, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for classtype out of range")
	}
	assertContains(t, err.(*ValidationError).Errors, "invalid classtype")
}

func TestValidate_Items(t *testing.T) {
	tests := []struct {
		name string
		rec  item.Record
		want string
	}{
		{"unknown kind", item.Record{Kind: "scroll", Name: "Scroll"}, "unknown kind"},
		{"unknown slot", item.Record{Kind: item.KindTrinket, Name: "Hat", Slot: "tail"}, "unknown slot"},
		{"negative weight", item.Record{Kind: item.KindTrinket, Name: "Feather", Weight: -0.5}, "negative weight"},
		{"over limit", item.Record{
			Kind: item.KindContainer, Name: "Pouch", SubinventoryLimit: 1,
			Subinventory: []item.Record{{Kind: item.KindTrinket, Name: "a"}, {Kind: item.KindTrinket, Name: "b"}},
		}, "limit is 1"},
		{"nested bad kind", item.Record{
			Kind: item.KindContainer, Name: "Bag",
			Subinventory: []item.Record{{Kind: "relic", Name: "Relic"}},
		}, `"bag/0"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := validCatalog()
			id := "bag"
			cat.Items[id] = tt.rec

			err := validate(cat, nil, &ValidationError{})
			if err == nil {
				t.Fatal("expected error")
			}
			assertContains(t, err.(*ValidationError).Errors, tt.want)
		})
	}
}

func TestValidate_StatRule(t *testing.T) {
	cat := validCatalog()
	rec := cat.Entities["hero"]
	rec.Stats = []stat.Stat{{Name: "Luck", Value: 3, Rule: "tarot"}}
	cat.Entities["hero"] = rec

	err := validate(cat, nil, &ValidationError{})
	if err == nil {
		t.Fatal("expected error for unknown rule")
	}
	assertContains(t, err.(*ValidationError).Errors, "unknown rule")
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	cat := validCatalog()
	cat.Entities["rock"] = entity.Record{Name: "Rock"}
	cat.Items["sack"] = item.Record{
		Kind: item.KindTrinket, Name: "Sack",
		Subinventory: []item.Record{{Kind: item.KindTrinket, Name: "Pebble"}},
	}

	ve := &ValidationError{}
	if err := validate(cat, nil, ve); err != nil {
		t.Fatalf("warnings should not fail validation: %v", err)
	}
	assertContains(t, ve.Warnings, "cannot level up")
	assertContains(t, ve.Warnings, "has contents")
}
