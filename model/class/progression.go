package class

import (
	"sort"
	"sync"

	"github.com/nathoo/rpgkit/types"
)

// FeatureTable is a data-driven Progression. Levels apply to every klasse;
// Branches add klasse-specific features on top.
type FeatureTable struct {
	Key      string
	Levels   map[int][]types.Feature
	Branches map[int]map[int][]types.Feature // klasse -> level -> features
}

// ID returns the table's registry key.
func (t *FeatureTable) ID() string { return t.Key }

// Features returns copies stamped with the level and source.
func (t *FeatureTable) Features(klasse, level int) []types.Feature {
	var out []types.Feature
	stamp := func(fs []types.Feature) {
		for _, f := range fs {
			f.Level = level
			f.Source = t.Key
			out = append(out, f)
		}
	}
	stamp(t.Levels[level])
	if branch, ok := t.Branches[klasse]; ok {
		stamp(branch[level])
	}
	return out
}

// Built-in progressions.
var (
	Fighter = &FeatureTable{
		Key: "fighter",
		Levels: map[int][]types.Feature{
			1: {{Name: "Fighting Style"}, {Name: "Second Wind", Description: "Regain hit points as a bonus action."}},
			2: {{Name: "Action Surge", Description: "Take one additional action."}},
			5: {{Name: "Extra Attack"}},
			9: {{Name: "Indomitable"}},
		},
		Branches: map[int]map[int][]types.Feature{
			1: {3: {{Name: "Improved Critical"}}, 7: {{Name: "Remarkable Athlete"}}},
			2: {3: {{Name: "Combat Superiority"}}, 7: {{Name: "Know Your Enemy"}}},
		},
	}
	Wizard = &FeatureTable{
		Key: "wizard",
		Levels: map[int][]types.Feature{
			1:  {{Name: "Spellcasting"}, {Name: "Arcane Recovery"}},
			18: {{Name: "Spell Mastery"}},
		},
		Branches: map[int]map[int][]types.Feature{
			1: {2: {{Name: "Sculpt Spells"}}, 6: {{Name: "Potent Cantrip"}}},
			2: {2: {{Name: "Arcane Ward"}}, 6: {{Name: "Projected Ward"}}},
		},
	}
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Progression{}
	builtins   = map[string]bool{}
)

func init() {
	for _, p := range []Progression{Fighter, Wizard} {
		Register(p)
		builtins[p.ID()] = true
	}
}

// Builtin reports whether id names a progression compiled into the package.
// Content packs must not redefine these.
func Builtin(id string) bool {
	return builtins[id]
}

// Register makes p resolvable by ID when decoding records. A later
// registration with the same ID replaces the earlier one.
func Register(p Progression) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.ID()] = p
}

// Lookup returns the progression registered under id.
func Lookup(id string) (Progression, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[id]
	return p, ok
}

// Registered returns the sorted IDs of all registered progressions.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
