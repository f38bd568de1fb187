package plates

import (
	"errors"
	"testing"
)

var strategies = []Strategy{StrategyBounded, StrategyLegacy}

func kgs(vals ...float64) []Weight {
	out := make([]Weight, len(vals))
	for i, v := range vals {
		out[i] = MustKg(v)
	}
	return out
}

// defaultInventory is the stock gym setup: 100 kg on a 20 kg bar.
func defaultInventory() Inventory {
	return Inventory{
		MustKg(20):   6,
		MustKg(10):   2,
		MustKg(5):    4,
		MustKg(2.5):  4,
		MustKg(1.25): 4,
		MustKg(0.5):  2,
		MustKg(0.25): 2,
	}
}

// assertDrawnFrom checks every plate in seq is a class present in inv.
func assertDrawnFrom(t *testing.T, seq []Weight, inv Inventory) {
	t.Helper()
	for _, w := range seq {
		if inv[w] <= 0 {
			t.Errorf("plate %s kg not in inventory %v", w, inv.Labels())
		}
	}
}

// TestSolveZeroTarget verifies a zero per-side target succeeds with no plates.
func TestSolveZeroTarget(t *testing.T) {
	for _, s := range strategies {
		seq, err := s.Solve(0, defaultInventory().PerSide())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
		if seq == nil || len(seq) != 0 {
			t.Errorf("%s: seq = %v, want empty", s, seq)
		}
		seq, err = s.Solve(0, nil)
		if err != nil || len(seq) != 0 {
			t.Errorf("%s: Solve(0, nil) = %v, %v; want empty, nil", s, seq, err)
		}
	}
}

// TestSolveFortyFromPairs covers target 40 with two 20s and two 10s per side.
func TestSolveFortyFromPairs(t *testing.T) {
	inv := Inventory{MustKg(20): 4, MustKg(10): 4}
	for _, s := range strategies {
		seq, err := s.Solve(MustKg(40), inv.PerSide())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
		if got := Sum(seq); got != MustKg(40) {
			t.Errorf("%s: sum = %s, want 40", s, got)
		}
		if len(seq) != 2 {
			t.Errorf("%s: plates = %v, want two 20s", s, seq)
		}
		assertDrawnFrom(t, seq, inv)
	}
}

// TestSolveEmptyInventory verifies no solution without plates.
func TestSolveEmptyInventory(t *testing.T) {
	for _, s := range strategies {
		_, err := s.Solve(MustKg(100), Inventory{}.PerSide())
		if !errors.Is(err, ErrNoSolution) {
			t.Errorf("%s: err = %v, want ErrNoSolution", s, err)
		}
	}
}

// TestSolveNegativeTarget verifies a negative per-side target short-circuits.
func TestSolveNegativeTarget(t *testing.T) {
	for _, s := range strategies {
		_, err := s.Solve(-MustKg(5), defaultInventory().PerSide())
		if !errors.Is(err, ErrNoSolution) {
			t.Errorf("%s: err = %v, want ErrNoSolution", s, err)
		}
	}
}

// TestSolveDefaultScenario is the 100 kg on a 20 kg bar end-to-end case.
func TestSolveDefaultScenario(t *testing.T) {
	inv := defaultInventory()
	for _, s := range strategies {
		seq, err := s.Solve(MustKg(40), inv.PerSide())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
		if got := Sum(seq); got != MustKg(40) {
			t.Errorf("%s: sum = %s, want 40", s, got)
		}
		assertDrawnFrom(t, seq, inv)
	}
}

// TestSolveFractionalTargets verifies exact quarter-kilogram arithmetic for
// sums that drift in binary floating point.
func TestSolveFractionalTargets(t *testing.T) {
	inv := defaultInventory()
	for _, target := range []float64{0.25, 0.75, 1.75, 3.25, 41.75, 44.25} {
		for _, s := range strategies {
			seq, err := s.Solve(MustKg(target), inv.PerSide())
			if err != nil {
				t.Fatalf("%s: target %g: unexpected error: %v", s, target, err)
			}
			if got := Sum(seq); got != MustKg(target) {
				t.Errorf("%s: target %g: sum = %s", s, target, got)
			}
		}
	}
}

// TestSolveBoundedRespectsCounts verifies the bounded strategy never uses more
// plates of a class than the inventory holds per side, while the legacy
// strategy reuses any class present.
func TestSolveBoundedRespectsCounts(t *testing.T) {
	inv := Inventory{MustKg(20): 2, MustKg(10): 2} // one of each per side

	_, err := StrategyBounded.Solve(MustKg(40), inv.PerSide())
	if !errors.Is(err, ErrNoSolution) {
		t.Errorf("bounded: err = %v, want ErrNoSolution", err)
	}

	seq, err := StrategyLegacy.Solve(MustKg(40), inv.PerSide())
	if err != nil {
		t.Fatalf("legacy: unexpected error: %v", err)
	}
	if got := Sum(seq); got != MustKg(40) {
		t.Errorf("legacy: sum = %s, want 40", got)
	}
}

// TestSolveBoundedFewestPlates verifies the bounded search returns a
// minimum-plate combination when a greedy pick would need more plates.
func TestSolveBoundedFewestPlates(t *testing.T) {
	// 30 per side has several two-plate answers (25+5, 20+10, 15+15);
	// 15+10+5 must not win.
	inv := Inventory{MustKg(25): 2, MustKg(20): 2, MustKg(15): 4, MustKg(10): 2, MustKg(5): 2}
	seq, err := StrategyBounded.Solve(MustKg(30), inv.PerSide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 2 {
		t.Errorf("plates = %v, want 2 plates", seq)
	}

	// 45 per side without a 25: 20+15+10 uses three plates.
	inv = Inventory{MustKg(20): 2, MustKg(15): 2, MustKg(10): 2, MustKg(5): 8}
	seq, err = StrategyBounded.Solve(MustKg(45), inv.PerSide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 3 || Sum(seq) != MustKg(45) {
		t.Errorf("plates = %v, want 3 plates summing to 45", seq)
	}
}

// TestSolveHeaviestFirst verifies discovery order follows the per-side list.
func TestSolveHeaviestFirst(t *testing.T) {
	seq, err := Solve(MustKg(37.5), defaultInventory().PerSide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] > seq[i-1] {
			t.Fatalf("seq = %v, want non-increasing", seq)
		}
	}
}

// TestSolveUnreachable verifies exhaustion when plates cannot form the target.
func TestSolveUnreachable(t *testing.T) {
	inv := Inventory{MustKg(20): 2, MustKg(5): 2}
	for _, s := range strategies {
		_, err := s.Solve(MustKg(2.5), inv.PerSide())
		if !errors.Is(err, ErrNoSolution) {
			t.Errorf("%s: err = %v, want ErrNoSolution", s, err)
		}
	}
}

// TestParseStrategy verifies strategy names and the default.
func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{"": StrategyBounded, "bounded": StrategyBounded, "legacy": StrategyLegacy}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStrategy("greedy"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(greedy) err = %v, want ErrUnknownStrategy", err)
	}
}
