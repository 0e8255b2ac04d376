// Package loader loads Lua content packs (classes, species, items and
// entity templates) into a catalog. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/class"
)

// rawDef holds a constructor table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	pack     *lua.LTable
	classes  []rawDef
	species  []rawDef
	items    []rawDef
	entities []rawDef
}

// Load reads all .lua files from dir, compiles them into a catalog,
// validates references and registers the pack's progressions.
func Load(dir string) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// pack.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
		logger.Log.WithField("file", f).Debug("executed content file")
	}

	ve := &ValidationError{}
	cat, tables, err := compile(coll, ve)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	if err := validate(cat, tables, ve); err != nil {
		return nil, err
	}

	for _, t := range tables {
		class.Register(t)
	}

	logger.Log.WithFields(logrus.Fields{
		"pack":     cat.Meta.Title,
		"classes":  len(cat.Classes),
		"species":  len(cat.Species),
		"items":    len(cat.Items),
		"entities": len(cat.Entities),
	}).Info("content pack loaded")

	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the content pack.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
