package dice

import (
	"errors"
	"testing"
)

func TestRoll_InRange(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		v := r.Roll(20)
		if v < 1 || v > 20 {
			t.Fatalf("roll %d out of range: %d", i, v)
		}
	}
}

func TestRoll_Deterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 50; i++ {
		if x, y := a.Roll(6), b.Roll(6); x != y {
			t.Fatalf("roll %d diverged: %d vs %d", i, x, y)
		}
	}
}

func TestPosition_CountsRolls(t *testing.T) {
	r := New(99)
	for i := 0; i < 10; i++ {
		r.Roll(8)
	}
	if r.Position() != 10 || r.Seed() != 99 {
		t.Errorf("seed/position = %d/%d", r.Seed(), r.Position())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Expr
	}{
		{"d20", Expr{Count: 1, Sides: 20}},
		{"2d6+1", Expr{Count: 2, Sides: 6, Bonus: 1}},
		{"1d8-2", Expr{Count: 1, Sides: 8, Bonus: -2}},
		{"4d6kh3", Expr{Count: 4, Sides: 6, KeepHighest: 3}},
		{"3D4", Expr{Count: 3, Sides: 4}},
		{"5", Expr{Bonus: 5}},
		{" 2d10 + 3 ", Expr{Count: 2, Sides: 10, Bonus: 3}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "d", "2x6", "0d6", "2d0", "2d6kh3", "d6+", "101d6"} {
		if _, err := Parse(in); !errors.Is(err, ErrBadExpr) {
			t.Errorf("Parse(%q): expected ErrBadExpr, got %v", in, err)
		}
	}
}

func TestExpr_RollBounds(t *testing.T) {
	r := New(1)
	e, _ := Parse("3d6+2")
	for i := 0; i < 200; i++ {
		total, rolls := e.Roll(r)
		if len(rolls) != 3 {
			t.Fatalf("expected 3 dice, got %d", len(rolls))
		}
		if total < 5 || total > 20 {
			t.Fatalf("total out of range: %d", total)
		}
	}
}

func TestExpr_KeepHighest(t *testing.T) {
	r := New(3)
	e := Expr{Count: 4, Sides: 6, KeepHighest: 3}
	for i := 0; i < 100; i++ {
		total, rolls := e.Roll(r)
		lowest := rolls[0]
		sum := 0
		for _, v := range rolls {
			sum += v
			if v < lowest {
				lowest = v
			}
		}
		if total != sum-lowest {
			t.Fatalf("rolls %v: total %d, want %d", rolls, total, sum-lowest)
		}
	}
}

func TestExpr_String(t *testing.T) {
	for _, in := range []string{"1d20", "2d6+1", "4d6kh3", "1d8-2", "7"} {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if e.String() != in {
			t.Errorf("String() = %q, want %q", e.String(), in)
		}
	}
}

func TestAbilityScores(t *testing.T) {
	scores := AbilityScores(New(5), 6)
	if len(scores) != 6 {
		t.Fatalf("expected 6 scores, got %d", len(scores))
	}
	for _, s := range scores {
		if s < 3 || s > 18 {
			t.Errorf("score out of range: %d", s)
		}
	}
}
