// Package session provides the Step() orchestrator that parses a command
// and applies it to the active character.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/dice"
	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
	"github.com/nathoo/rpgkit/model/stat"
	"github.com/nathoo/rpgkit/types"
)

// ErrNoEntities is returned when the catalog has nothing to start with.
var ErrNoEntities = errors.New("catalog defines no entities")

// MaxGive caps how many copies of an item one give command creates.
const MaxGive = 99

// Session holds the catalog and the character being worked on.
type Session struct {
	Catalog *catalog.Catalog
	Entity  *entity.Entity
	Roller  *dice.Roller

	Turn int
	Log  []string // raw input of every step, oldest first
}

// New creates a session with a fresh copy of the catalog's start entity,
// or the first entity by ID when no start is set.
func New(cat *catalog.Catalog, roller *dice.Roller) (*Session, error) {
	start := cat.Meta.Start
	if start == "" {
		ids := cat.EntityIDs()
		if len(ids) == 0 {
			return nil, ErrNoEntities
		}
		start = ids[0]
	}
	e, err := cat.NewEntity(start)
	if err != nil {
		return nil, err
	}
	return &Session{Catalog: cat, Entity: e, Roller: roller}, nil
}

// Step processes one command and returns the result.
func (s *Session) Step(input string) types.Result {
	var r types.Result

	cmd := Parse(input)
	s.Log = append(s.Log, input)

	if cmd.Verb == "" {
		r.Output = append(r.Output, "What do you want to do?")
		return r
	}

	handler, ok := handlers[cmd.Verb]
	if !ok {
		r.Output = append(r.Output, fmt.Sprintf("I don't know how to %q. Try /help.", cmd.Verb))
		return r
	}
	handler(s, cmd, &r)
	s.Turn++

	if len(r.Events) > 0 {
		logger.Log.WithFields(logrus.Fields{
			"verb":   cmd.Verb,
			"events": len(r.Events),
			"turn":   s.Turn,
		}).Debug("step")
	}
	return r
}

type handlerFunc func(s *Session, cmd types.Command, r *types.Result)

var handlers = map[string]handlerFunc{
	"sheet":     cmdSheet,
	"stat":      cmdStat,
	"levelup":   cmdLevelUp,
	"give":      cmdGive,
	"use":       cmdUse,
	"inspect":   cmdInspect,
	"stow":      cmdStow,
	"resource":  cmdResource,
	"ability":   cmdAbility,
	"inventory": cmdInventory,
	"features":  cmdFeatures,
	"roll":      cmdRoll,
	"rollstats": cmdRollStats,
	"new":       cmdNew,
}

// Verbs returns the recognized command verbs, sorted.
func Verbs() []string {
	verbs := make([]string, 0, len(handlers))
	for v := range handlers {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

func say(r *types.Result, format string, args ...any) {
	r.Output = append(r.Output, fmt.Sprintf(format, args...))
}

func emit(r *types.Result, typ string, data map[string]any) {
	r.Events = append(r.Events, types.Event{Type: typ, Data: data})
}

func cmdSheet(s *Session, _ types.Command, r *types.Result) {
	r.Output = append(r.Output, strings.Split(s.Entity.String(), "\n")...)
}

// cmdStat shows a stat, or changes it: "+N"/"-N" adjust, "=N" or "N" set.
// A missing stat is created when a value is given.
func cmdStat(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	if cmd.Object == "" {
		if len(e.Stats) == 0 {
			say(r, "%s has no stats.", e.Name)
			return
		}
		for _, st := range e.Stats {
			say(r, "%s", st)
		}
		return
	}

	st, ok := e.Stat(cmd.Object)
	if cmd.Amount == "" {
		if !ok {
			say(r, "%s has no stat %q.", e.Name, cmd.Object)
			return
		}
		say(r, "%s", st)
		if st.Description != "" {
			say(r, "%s", st.Description)
		}
		return
	}

	set, n, err := parseAmount(cmd.Amount)
	if err != nil {
		say(r, "%v", err)
		return
	}
	if !ok {
		st = stat.New(titleCase(cmd.Object))
		e.AddStat(st)
	}
	if set {
		st.SetValue(n)
	} else {
		st.ModifyValue(n)
	}
	say(r, "%s", st)
	emit(r, "stat_changed", map[string]any{"stat": st.Name, "value": st.Get(), "modifier": st.Modifier()})
}

func cmdLevelUp(s *Session, _ types.Command, r *types.Result) {
	e := s.Entity
	before := len(e.Features)
	if err := e.LevelUp(); err != nil {
		say(r, "%s cannot level up: %v", e.Name, err)
		return
	}
	say(r, "%s is now %s.", e.Name, e.Class)
	for _, f := range e.Features[before:] {
		if f.Description != "" {
			say(r, "Gained %s: %s", f.Name, f.Description)
		} else {
			say(r, "Gained %s.", f.Name)
		}
	}
	emit(r, "level_up", map[string]any{"class": e.Class.Name, "level": e.Class.Level, "features": len(e.Features) - before})
}

// cmdGive adds a fresh catalog item, looked up by ID or display name.
func cmdGive(s *Session, cmd types.Command, r *types.Result) {
	if cmd.Object == "" {
		say(r, "Give what? Available: %s", strings.Join(s.Catalog.ItemIDs(), ", "))
		return
	}
	id, ok := s.itemID(cmd.Object)
	if !ok {
		say(r, "No item called %q in %s.", cmd.Object, s.Catalog.Meta.Title)
		return
	}

	count := 1
	if cmd.Amount != "" {
		if n, err := strconv.Atoi(strings.TrimLeft(cmd.Amount, "+=")); err == nil && n > 0 {
			count = n
		}
	}
	if count > MaxGive {
		say(r, "Cannot give more than %d at once.", MaxGive)
		return
	}
	var name string
	for i := 0; i < count; i++ {
		it, err := s.Catalog.NewItem(id)
		if err != nil {
			say(r, "%v", err)
			return
		}
		name = it.Core().Name
		s.Entity.AddItem(it)
	}
	if count > 1 {
		say(r, "%s receives %d x %s.", s.Entity.Name, count, name)
	} else {
		say(r, "%s receives %s.", s.Entity.Name, name)
	}
	emit(r, "item_added", map[string]any{"item": id, "count": count})
}

func (s *Session) itemID(query string) (string, bool) {
	id := strings.ReplaceAll(query, " ", "_")
	if _, ok := s.Catalog.Items[id]; ok {
		return id, true
	}
	for _, id := range s.Catalog.ItemIDs() {
		if strings.EqualFold(s.Catalog.Items[id].Name, query) {
			return id, true
		}
	}
	return "", false
}

func cmdUse(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	if cmd.Object == "" {
		say(r, "Use what?")
		return
	}
	if cmd.Target != "" && cmd.Target != "self" && !strings.EqualFold(cmd.Target, e.Name) {
		say(r, "There is no %q here.", cmd.Target)
		return
	}
	if it, ok := e.FindItem(cmd.Object); ok && !e.Proficient(it) {
		say(r, "%s is not proficient with %s.", e.Name, it.Core().Name)
	}
	msg, err := e.UseItem(cmd.Object, nil)
	switch {
	case errors.Is(err, entity.ErrItemAbsent):
		say(r, "%s is not carrying %q.", e.Name, cmd.Object)
		return
	case err != nil:
		say(r, "%v", err)
		return
	}
	say(r, "%s", msg)
	emit(r, "item_used", map[string]any{"item": cmd.Object})
}

// cmdInspect shows item details, or the class or species.
func cmdInspect(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	switch cmd.Object {
	case "", "self", strings.ToLower(e.Name):
		cmdSheet(s, cmd, r)
		return
	case "class":
		if e.Class == nil {
			say(r, "%s has no class.", e.Name)
			return
		}
		say(r, "%s (progression %s, classtype %d)", e.Class, e.Class.Progression.ID(), e.Class.Classtype)
		return
	case "species":
		if e.Species == nil {
			say(r, "%s has no species.", e.Name)
			return
		}
		say(r, "%s", e.Species.Details())
		return
	}

	it, ok := e.FindItem(cmd.Object)
	if !ok {
		if st, ok := e.Stat(cmd.Object); ok {
			say(r, "%s", st)
			return
		}
		say(r, "%s is not carrying %q.", e.Name, cmd.Object)
		return
	}
	say(r, "%s", it.Details())
	if p := it.Core().Proficiency; p != "" {
		if e.Proficient(it) {
			say(r, "Requires %s proficiency (%s has it).", p, e.Name)
		} else {
			say(r, "Requires %s proficiency (%s lacks it).", p, e.Name)
		}
	}
}

// cmdStow moves a top-level item into a carried container.
func cmdStow(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	if cmd.Object == "" || cmd.Target == "" {
		say(r, "Stow what in what?")
		return
	}
	dst, ok := e.FindItem(cmd.Target)
	if !ok {
		say(r, "%s is not carrying %q.", e.Name, cmd.Target)
		return
	}
	it, err := e.TakeItem(cmd.Object)
	if err != nil {
		say(r, "%s has no loose %q to stow.", e.Name, cmd.Object)
		return
	}
	if err := dst.Core().AddToSubinventory(it); err != nil {
		e.AddItem(it)
		say(r, "Cannot stow %s in %s: %v", it.Core().Name, dst.Core().Name, err)
		return
	}
	say(r, "%s stows %s in %s.", e.Name, it.Core().Name, dst.Core().Name)
	emit(r, "item_stowed", map[string]any{"item": it.Core().Name, "container": dst.Core().Name})
}

func cmdResource(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	if cmd.Object == "" {
		if len(e.Resources) == 0 {
			say(r, "%s has no resources.", e.Name)
			return
		}
		for _, res := range e.Resources {
			say(r, "%s: %d", res.Name, res.Amount)
		}
		return
	}

	cur, ok := e.Resource(cmd.Object)
	if cmd.Amount == "" {
		if !ok {
			say(r, "%s has no resource %q.", e.Name, cmd.Object)
			return
		}
		say(r, "%s: %d", cmd.Object, cur)
		return
	}

	set, n, err := parseAmount(cmd.Amount)
	if err != nil {
		say(r, "%v", err)
		return
	}
	delta := n
	if set {
		delta = n - cur
	}
	amount := e.ModifyResource(cmd.Object, delta)
	say(r, "%s: %d", cmd.Object, amount)
	emit(r, "resource_changed", map[string]any{"resource": cmd.Object, "amount": amount, "delta": delta})
}

// cmdAbility lists species abilities or grants a new one.
func cmdAbility(s *Session, cmd types.Command, r *types.Result) {
	e := s.Entity
	if e.Species == nil {
		say(r, "%s has no species.", e.Name)
		return
	}
	if cmd.Object == "" {
		if len(e.Species.Abilities) == 0 {
			say(r, "%s has no abilities.", e.Species.Name)
			return
		}
		say(r, "%s abilities: %s", e.Species.Name, strings.Join(e.Species.Abilities, ", "))
		return
	}
	name := titleCase(cmd.Object)
	e.Species.AddAbility(name)
	say(r, "%s gains %s.", e.Name, name)
	emit(r, "ability_added", map[string]any{"ability": name})
}

func cmdInventory(s *Session, _ types.Command, r *types.Result) {
	e := s.Entity
	if len(e.Inventory) == 0 {
		say(r, "%s is carrying nothing.", e.Name)
		return
	}
	say(r, "%s is carrying:", e.Name)
	var walk func(items []item.Item, depth int)
	walk = func(items []item.Item, depth int) {
		for _, it := range items {
			b := it.Core()
			line := fmt.Sprintf("%s- %s (%s, %g lb)", strings.Repeat("  ", depth+1), b.Name, it.Kind(), b.Weight)
			if b.SubinventoryLimit > 0 {
				line += fmt.Sprintf(" [%d/%d]", len(b.Subinventory), b.SubinventoryLimit)
			}
			r.Output = append(r.Output, line)
			walk(b.Subinventory, depth+1)
		}
	}
	walk(e.Inventory, 0)
	say(r, "Total weight: %g lb", e.CarriedWeight())
}

func cmdFeatures(s *Session, _ types.Command, r *types.Result) {
	e := s.Entity
	if len(e.Features) == 0 {
		say(r, "%s has no features yet.", e.Name)
		return
	}
	for _, f := range e.Features {
		line := fmt.Sprintf("L%d %s", f.Level, f.Name)
		if f.Description != "" {
			line += ": " + f.Description
		}
		r.Output = append(r.Output, line)
	}
}

func cmdRoll(s *Session, cmd types.Command, r *types.Result) {
	notation := cmd.Object
	if notation == "" {
		notation = "d20"
	}
	expr, err := dice.Parse(notation)
	if err != nil {
		say(r, "%v", err)
		return
	}
	total, rolls := expr.Roll(s.Roller)
	say(r, "%s: %v = %d", expr, rolls, total)
	emit(r, "dice_rolled", map[string]any{"expr": expr.String(), "rolls": rolls, "total": total})
}

// cmdRollStats rerolls the six ability scores with 4d6 keep highest 3.
func cmdRollStats(s *Session, _ types.Command, r *types.Result) {
	e := s.Entity
	scores := dice.AbilityScores(s.Roller, len(catalog.AbilityNames))
	for i, name := range catalog.AbilityNames {
		st, ok := e.Stat(name)
		if !ok {
			st = stat.New(name)
			if err := st.SetRule(stat.RuleAbility); err != nil {
				say(r, "%v", err)
				return
			}
			e.AddStat(st)
		}
		st.SetValue(scores[i])
		say(r, "%s", st)
	}
	emit(r, "stats_rolled", map[string]any{"scores": scores})
}

// cmdNew replaces the active entity with a fresh one from the catalog.
func cmdNew(s *Session, cmd types.Command, r *types.Result) {
	if cmd.Object == "" {
		say(r, "New what? Available: %s", strings.Join(s.Catalog.EntityIDs(), ", "))
		return
	}
	id := strings.ReplaceAll(cmd.Object, " ", "_")
	e, err := s.Catalog.NewEntity(id)
	if err != nil {
		say(r, "%v", err)
		return
	}
	s.Entity = e
	say(r, "Now playing %s.", e.Name)
	emit(r, "entity_created", map[string]any{"template": id, "id": e.ID})
}

// parseAmount reads "+N", "-N" (adjust) or "=N", "N" (set).
func parseAmount(a string) (set bool, n int, err error) {
	switch {
	case strings.HasPrefix(a, "="):
		set = true
		a = a[1:]
	case strings.HasPrefix(a, "+"), strings.HasPrefix(a, "-"):
	default:
		set = true
	}
	n, err = strconv.Atoi(a)
	if err != nil {
		return false, 0, fmt.Errorf("bad amount %q", a)
	}
	return set, n, nil
}

// titleCase upper-cases the first rune of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Recent returns up to n of the most recent step inputs, oldest first.
func (s *Session) Recent(n int) []string {
	if n > len(s.Log) {
		n = len(s.Log)
	}
	return s.Log[len(s.Log)-n:]
}
