// Package dice provides a deterministic seeded roller and
// standard dice notation ("2d6+1", "d20", "4d6kh3").
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrBadExpr is returned for malformed dice notation.
var ErrBadExpr = errors.New("bad dice expression")

// Roller wraps math/rand.Rand and counts the rolls made.
type Roller struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a roller from a seed.
func New(seed int64) *Roller {
	return &Roller{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides].
func (r *Roller) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// Seed returns the seed the roller was created with.
func (r *Roller) Seed() int64 {
	return r.seed
}

// Position returns the number of rolls made since creation.
func (r *Roller) Position() int64 {
	return r.pos
}

// Expr is a parsed dice expression: Count dice of Sides, keeping the
// KeepHighest best (0 keeps all), plus Bonus.
type Expr struct {
	Count       int
	Sides       int
	KeepHighest int
	Bonus       int
}

var exprRe = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Parse reads dice notation. A bare integer is a constant.
func Parse(s string) (Expr, error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if n, err := strconv.Atoi(s); err == nil {
		return Expr{Bonus: n}, nil
	}
	m := exprRe.FindStringSubmatch(s)
	if m == nil {
		return Expr{}, fmt.Errorf("%w: %q", ErrBadExpr, s)
	}
	e := Expr{Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		e.KeepHighest, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		e.Bonus, _ = strconv.Atoi(m[4])
	}
	if e.Count < 1 || e.Count > 100 || e.Sides < 1 || e.KeepHighest > e.Count {
		return Expr{}, fmt.Errorf("%w: %q", ErrBadExpr, s)
	}
	return e, nil
}

// Roll rolls the expression and returns the total and the individual dice.
func (e Expr) Roll(r *Roller) (int, []int) {
	rolls := make([]int, e.Count)
	for i := range rolls {
		rolls[i] = r.Roll(e.Sides)
	}
	kept := rolls
	if e.KeepHighest > 0 {
		kept = append([]int(nil), rolls...)
		sort.Sort(sort.Reverse(sort.IntSlice(kept)))
		kept = kept[:e.KeepHighest]
	}
	total := e.Bonus
	for _, v := range kept {
		total += v
	}
	return total, rolls
}

func (e Expr) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Bonus)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dd%d", e.Count, e.Sides)
	if e.KeepHighest > 0 {
		fmt.Fprintf(&sb, "kh%d", e.KeepHighest)
	}
	if e.Bonus != 0 {
		fmt.Fprintf(&sb, "%+d", e.Bonus)
	}
	return sb.String()
}

// AbilityScores rolls n scores with 4d6 keep-highest-3.
func AbilityScores(r *Roller, n int) []int {
	e := Expr{Count: 4, Sides: 6, KeepHighest: 3}
	scores := make([]int, n)
	for i := range scores {
		scores[i], _ = e.Roll(r)
	}
	return scores
}
