package loader

import (
	"fmt"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/model/class"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/species"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStringList returns the string elements of an array field in order.
func getStringList(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// nameOr returns the table's name field, falling back to the ID.
func nameOr(tbl *lua.LTable, id string) string {
	if n := getString(tbl, "name"); n != "" {
		return n
	}
	return id
}

// compile converts the collected Lua tables into a catalog plus the
// feature tables defined by the pack. Dangling references are recorded
// in ve; structural problems abort with an error.
func compile(coll *collector, ve *ValidationError) (*catalog.Catalog, []*class.FeatureTable, error) {
	cat := catalog.New()

	if coll.pack == nil {
		return nil, nil, fmt.Errorf("no Pack{} definition found")
	}
	cat.Meta = catalog.Meta{
		Title:   getString(coll.pack, "title"),
		Author:  getString(coll.pack, "author"),
		Version: getString(coll.pack, "version"),
		Start:   getString(coll.pack, "start"),
	}

	var tables []*class.FeatureTable
	for _, raw := range coll.classes {
		if _, dup := cat.Classes[raw.id]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate class ID %q", raw.id))
			continue
		}
		rec, table, err := compileClass(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("compiling class %s: %w", raw.id, err)
		}
		cat.Classes[raw.id] = rec
		if table != nil {
			tables = append(tables, table)
		}
	}

	for _, raw := range coll.species {
		if _, dup := cat.Species[raw.id]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate species ID %q", raw.id))
			continue
		}
		cat.Species[raw.id] = compileSpecies(raw)
	}

	// Items may nest other items by ID, so resolve against the raw set.
	rawItems := map[string]*lua.LTable{}
	for _, raw := range coll.items {
		if _, dup := rawItems[raw.id]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item ID %q", raw.id))
			continue
		}
		rawItems[raw.id] = raw.table
	}
	for _, id := range sortedIDs(rawItems) {
		rec, ok := resolveItem(id, rawItems, nil, ve)
		if ok {
			cat.Items[id] = rec
		}
	}

	for _, raw := range coll.entities {
		if _, dup := cat.Entities[raw.id]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate entity ID %q", raw.id))
			continue
		}
		cat.Entities[raw.id] = compileEntity(raw, cat, ve)
	}

	return cat, tables, nil
}

// compileClass builds the class template. Without an explicit progression
// the class's own levels/branches become a feature table keyed by its ID.
func compileClass(raw rawDef) (class.Record, *class.FeatureTable, error) {
	tbl := raw.table
	rec := class.Record{
		Name:        nameOr(tbl, raw.id),
		Klasse:      getInt(tbl, "klasse"),
		Subklasse:   getInt(tbl, "subklasse"),
		Classtype:   getInt(tbl, "classtype"),
		Progression: getString(tbl, "progression"),
	}

	levels := getTable(tbl, "levels")
	branches := getTable(tbl, "branches")
	if rec.Progression != "" {
		if levels != nil || branches != nil {
			return rec, nil, fmt.Errorf("progression and levels/branches are mutually exclusive")
		}
		return rec, nil, nil
	}

	table := &class.FeatureTable{
		Key:      raw.id,
		Levels:   compileLevels(levels),
		Branches: map[int]map[int][]types.Feature{},
	}
	if branches != nil {
		var err error
		branches.ForEach(func(k, v lua.LValue) {
			klasse, ok := intKey(k)
			bt, isTable := v.(*lua.LTable)
			if !ok || !isTable {
				err = fmt.Errorf("branches must map klasse numbers to level tables")
				return
			}
			table.Branches[klasse] = compileLevels(bt)
		})
		if err != nil {
			return rec, nil, err
		}
	}
	rec.Progression = table.Key
	return rec, table, nil
}

// compileLevels reads { [level] = { "Name", Feature("Name", "desc"), ... } }.
func compileLevels(tbl *lua.LTable) map[int][]types.Feature {
	levels := map[int][]types.Feature{}
	if tbl == nil {
		return levels
	}
	tbl.ForEach(func(k, v lua.LValue) {
		level, ok := intKey(k)
		if !ok {
			return
		}
		if list, ok := v.(*lua.LTable); ok {
			levels[level] = compileFeatures(list)
		}
	})
	return levels
}

func compileFeatures(list *lua.LTable) []types.Feature {
	var out []types.Feature
	for i := 1; i <= list.MaxN(); i++ {
		switch v := list.RawGetInt(i).(type) {
		case lua.LString:
			out = append(out, types.Feature{Name: string(v)})
		case *lua.LTable:
			out = append(out, types.Feature{
				Name:        getString(v, "name"),
				Description: getString(v, "description"),
			})
		}
	}
	return out
}

// intKey accepts numeric keys and numeric strings ("3").
func intKey(k lua.LValue) (int, bool) {
	switch kv := k.(type) {
	case lua.LNumber:
		return int(kv), true
	case lua.LString:
		n, err := strconv.Atoi(string(kv))
		return n, err == nil
	}
	return 0, false
}

func compileSpecies(raw rawDef) species.Species {
	tbl := raw.table
	return species.Species{
		Name:        nameOr(tbl, raw.id),
		Description: getString(tbl, "description"),
		Lifespan:    getInt(tbl, "lifespan"),
		Habitat:     getString(tbl, "habitat"),
		Abilities:   getStringList(tbl, "abilities"),
	}
}

// resolveItem compiles an item and, recursively, the items listed in its
// contents. stack carries the IDs being resolved to detect cycles.
func resolveItem(id string, raws map[string]*lua.LTable, stack []string, ve *ValidationError) (item.Record, bool) {
	for _, s := range stack {
		if s == id {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q contains itself", id))
			return item.Record{}, false
		}
	}
	tbl, ok := raws[id]
	if !ok {
		return item.Record{}, false
	}

	rec := item.Record{
		Kind:              item.Kind(getString(tbl, "kind")),
		Name:              nameOr(tbl, id),
		Description:       getString(tbl, "description"),
		Weight:            getNumber(tbl, "weight"),
		Value:             getInt(tbl, "value"),
		Durability:        getInt(tbl, "durability"),
		Resources:         getStringList(tbl, "resources"),
		Slot:              item.Slot(getString(tbl, "slot")),
		Proficiency:       getString(tbl, "proficiency"),
		SubinventoryLimit: getInt(tbl, "limit"),
		Damage:            getInt(tbl, "damage"),
		DamageType:        getString(tbl, "damage_type"),
		ArmorClass:        getInt(tbl, "armor_class"),
		Heal:              getInt(tbl, "heal"),
		Charges:           getInt(tbl, "charges"),
	}
	applyItemDefaults(&rec)

	stack = append(stack, id)
	for _, sub := range getStringList(tbl, "contents") {
		if _, ok := raws[sub]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q contains undefined item %q", id, sub))
			continue
		}
		subRec, ok := resolveItem(sub, raws, stack, ve)
		if !ok {
			return item.Record{}, false
		}
		rec.Subinventory = append(rec.Subinventory, subRec)
	}
	return rec, true
}

// applyItemDefaults mirrors the variant constructors for fields the
// content left out.
func applyItemDefaults(rec *item.Record) {
	switch rec.Kind {
	case item.KindWeapon, item.KindArmor:
		if rec.Durability == 0 {
			rec.Durability = item.DefaultDurability
		}
	case item.KindPotion:
		if rec.Charges == 0 {
			rec.Charges = 1
		}
	}
}

func compileEntity(raw rawDef, cat *catalog.Catalog, ve *ValidationError) entity.Record {
	tbl := raw.table
	rec := entity.Record{
		Name:        nameOr(tbl, raw.id),
		Description: getString(tbl, "description"),
		Tags:        getStringList(tbl, "tags"),
	}

	if id := getString(tbl, "class"); id != "" {
		if cr, ok := cat.Classes[id]; ok {
			rec.Class = &cr
		} else {
			ve.Errors = append(ve.Errors, fmt.Sprintf("entity %q references undefined class %q", raw.id, id))
		}
	}
	if id := getString(tbl, "species"); id != "" {
		if sp, ok := cat.Species[id]; ok {
			rec.Species = sp.Clone()
		} else {
			ve.Errors = append(ve.Errors, fmt.Sprintf("entity %q references undefined species %q", raw.id, id))
		}
	}

	if stats := getTable(tbl, "stats"); stats != nil {
		for i := 1; i <= stats.MaxN(); i++ {
			st, ok := stats.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			rec.Stats = append(rec.Stats, stat.Stat{
				Name:        getString(st, "name"),
				Value:       getInt(st, "value"),
				Description: getString(st, "description"),
				Rule:        getString(st, "rule"),
			})
		}
	}

	if actions := getTable(tbl, "actions"); actions != nil {
		for i := 1; i <= actions.MaxN(); i++ {
			if at, ok := actions.RawGetInt(i).(*lua.LTable); ok {
				rec.Actions = append(rec.Actions, types.Action{
					Name:        getString(at, "name"),
					Description: getString(at, "description"),
				})
			}
		}
	}

	for _, id := range getStringList(tbl, "items") {
		ir, ok := cat.Items[id]
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("entity %q carries undefined item %q", raw.id, id))
			continue
		}
		rec.Inventory = append(rec.Inventory, ir)
	}

	// resources = { hp = 12, gold = 10 }, kept in name order.
	if res := getTable(tbl, "resources"); res != nil {
		amounts := map[string]int{}
		res.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			n, nok := v.(lua.LNumber)
			if kok && nok {
				amounts[string(ks)] = int(n)
			}
		})
		for _, name := range sortedIDs(amounts) {
			rec.Resources = append(rec.Resources, types.Resource{Name: name, Amount: amounts[name]})
		}
	}

	return rec
}

// sortedLuaFiles returns .lua files with pack.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var packFile string
	var others []string
	for _, f := range files {
		if f == "pack.lua" {
			packFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if packFile != "" {
		return append([]string{packFile}, others...)
	}
	return others
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
