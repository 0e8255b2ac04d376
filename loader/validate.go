package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/stat"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validKinds = map[item.Kind]bool{
	item.KindWeapon:    true,
	item.KindArmor:     true,
	item.KindPotion:    true,
	item.KindContainer: true,
	item.KindTrinket:   true,
}

var validSlots = map[item.Slot]bool{
	item.SlotNone:     true,
	item.SlotMainHand: true,
	item.SlotOffHand:  true,
	item.SlotHead:     true,
	item.SlotBody:     true,
	item.SlotFeet:     true,
	item.SlotNeck:     true,
	item.SlotRing:     true,
	item.SlotBack:     true,
}

// validate checks the compiled catalog for consistency. Errors already
// recorded in ve during compilation are reported together with these.
func validate(cat *catalog.Catalog, tables []*class.FeatureTable, ve *ValidationError) error {
	if cat.Meta.Title == "" {
		ve.Errors = append(ve.Errors, "Pack.title is required")
	}
	if cat.Meta.Start != "" {
		if _, ok := cat.Entities[cat.Meta.Start]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"start entity %q not found in defined entities", cat.Meta.Start))
		}
	}

	packTables := map[string]bool{}
	for _, t := range tables {
		packTables[t.Key] = true
	}
	for id, rec := range cat.Classes {
		if rec.Classtype < 0 || rec.Classtype > 3 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"class %q has invalid classtype %d", id, rec.Classtype))
		}
		if packTables[rec.Progression] {
			continue
		}
		if _, ok := class.Lookup(rec.Progression); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"class %q uses unknown progression %q", id, rec.Progression))
		}
	}
	for _, t := range tables {
		if class.Builtin(t.Key) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"class %q redefines the built-in %q progression", t.Key, t.Key))
		}
		if len(t.Levels) == 0 && len(t.Branches) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"class %q grants no features", t.Key))
		}
	}

	for id, rec := range cat.Items {
		validateItem(id, rec, ve)
	}

	for id, rec := range cat.Entities {
		for _, s := range rec.Stats {
			if s.Name == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("entity %q has a stat without a name", id))
			}
			if s.Rule != "" && !stat.HasRule(s.Rule) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"entity %q stat %q uses unknown rule %q", id, s.Name, s.Rule))
			}
		}
		if rec.Class == nil {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"entity %q has no class and cannot level up", id))
		}
	}

	for _, w := range ve.Warnings {
		logger.Log.Warn(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateItem(id string, rec item.Record, ve *ValidationError) {
	if !validKinds[rec.Kind] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"item %q has unknown kind %q", id, rec.Kind))
	}
	if !validSlots[rec.Slot] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"item %q has unknown slot %q", id, rec.Slot))
	}
	if rec.Weight < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"item %q has negative weight %g", id, rec.Weight))
	}
	if rec.SubinventoryLimit > 0 && len(rec.Subinventory) > rec.SubinventoryLimit {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"item %q holds %d items but its limit is %d", id, len(rec.Subinventory), rec.SubinventoryLimit))
	}
	if len(rec.Subinventory) > 0 && rec.Kind != item.KindContainer {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"item %q is a %s but has contents", id, rec.Kind))
	}
	for i, sub := range rec.Subinventory {
		validateItem(fmt.Sprintf("%s/%d", id, i), sub, ve)
	}
}
