package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

// curried returns a Lua function for the `Kind "id" { ... }` form: the
// outer call takes the ID and returns a function that takes the table.
func curried(L *lua.LState, add func(rawDef)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			add(rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Pack { title = "...", author = "...", version = "...", start = "hero" }
	L.SetGlobal("Pack", L.NewFunction(func(L *lua.LState) int {
		coll.pack = L.CheckTable(1)
		return 0
	}))

	// Class "fighter" { name = "Fighter", classtype = 2, levels = { [1] = {...} } }
	L.SetGlobal("Class", curried(L, func(d rawDef) { coll.classes = append(coll.classes, d) }))

	// Species "elf" { name = "Elf", lifespan = 750, abilities = { ... } }
	L.SetGlobal("Species", curried(L, func(d rawDef) { coll.species = append(coll.species, d) }))

	// Item "longsword" { kind = "weapon", damage = 8, ... }
	L.SetGlobal("Item", curried(L, func(d rawDef) { coll.items = append(coll.items, d) }))

	// Entity "hero" { class = "fighter", species = "human", items = { ... } }
	L.SetGlobal("Entity", curried(L, func(d rawDef) { coll.entities = append(coll.entities, d) }))
}

func registerHelpers(L *lua.LState) {
	// Feature("Second Wind", "Regain hit points.")
	L.SetGlobal("Feature", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("name", lua.LString(L.CheckString(1)))
		if desc := L.OptString(2, ""); desc != "" {
			tbl.RawSetString("description", lua.LString(desc))
		}
		L.Push(tbl)
		return 1
	}))

	// Action("Dodge", "Focus on avoiding attacks.")
	L.SetGlobal("Action", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("name", lua.LString(L.CheckString(1)))
		tbl.RawSetString("description", lua.LString(L.OptString(2, "")))
		L.Push(tbl)
		return 1
	}))

	// Stat("Speed", 30) uses the raw rule; Ability("Strength", 15) the ability rule.
	L.SetGlobal("Stat", L.NewFunction(func(L *lua.LState) int {
		L.Push(statTable(L, L.CheckString(1), L.CheckInt(2), L.OptString(3, "")))
		return 1
	}))
	L.SetGlobal("Ability", L.NewFunction(func(L *lua.LState) int {
		L.Push(statTable(L, L.CheckString(1), L.CheckInt(2), "ability"))
		return 1
	}))
}

func statTable(L *lua.LState, name string, value int, rule string) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString(name))
	tbl.RawSetString("value", lua.LNumber(value))
	if rule != "" {
		tbl.RawSetString("rule", lua.LString(rule))
	}
	return tbl
}
