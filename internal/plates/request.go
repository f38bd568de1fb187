package plates

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MaxTarget is the heaviest bar a LoadRequest may ask for, in kilograms.
const MaxTarget = 1000

// ErrTargetTooLarge is returned for a target or bar above MaxTarget.
var ErrTargetTooLarge = errors.New("target too large")

// LoadRequest is one plate-loading question, built fresh from user input.
type LoadRequest struct {
	Target    float64   `json:"target"`
	Bar       float64   `json:"bar"`
	Collars   float64   `json:"collars"`
	Inventory Inventory `json:"inventory"`
}

// PerSide returns (target - bar - collars) / 2. A target that is negative,
// not a quarter-kilogram multiple, or that splits into a per-side weight
// below the smallest plate increment has no solution. Weights above
// MaxTarget are rejected with ErrTargetTooLarge.
func (r LoadRequest) PerSide() (Weight, error) {
	if r.Target > MaxTarget || r.Bar > MaxTarget || r.Collars > MaxTarget {
		return 0, fmt.Errorf("%w: at most %d kg", ErrTargetTooLarge, MaxTarget)
	}
	target, ok1 := FromKg(r.Target)
	bar, ok2 := FromKg(r.Bar)
	collars, ok3 := FromKg(r.Collars)
	if !ok1 || !ok2 || !ok3 {
		return 0, fmt.Errorf("%w: weights must be multiples of 0.25 kg", ErrNoSolution)
	}
	if bar < 0 || collars < 0 {
		return 0, fmt.Errorf("%w: bar and collars must not be negative", ErrNoSolution)
	}
	plates := target - bar - collars
	if plates < 0 {
		return 0, fmt.Errorf("%w: target %s kg is below bar and collars", ErrNoSolution, target)
	}
	if plates%2 != 0 {
		return 0, fmt.Errorf("%w: %s kg cannot be split evenly across both sides", ErrNoSolution, plates)
	}
	return plates / 2, nil
}

// Loadout is a solved LoadRequest ready for presentation.
type Loadout struct {
	Request LoadRequest `json:"request"`
	PerSide Weight      `json:"-"`
	Plates  []Weight    `json:"-"`
}

// Plan solves a LoadRequest with the given strategy.
func Plan(r LoadRequest, s Strategy) (Loadout, error) {
	if err := r.Inventory.Validate(); err != nil {
		return Loadout{}, err
	}
	perSide, err := r.PerSide()
	if err != nil {
		return Loadout{}, err
	}
	seq, err := s.Solve(perSide, r.Inventory.PerSide())
	if err != nil {
		return Loadout{}, err
	}
	return Loadout{Request: r, PerSide: perSide, Plates: seq}, nil
}

// PlateCount is how many plates of one class go on the bar, both sides.
type PlateCount struct {
	Kg    float64 `json:"kg"`
	Count int     `json:"count"`
}

// Counts groups the per-side plates by class, heaviest first, doubling each
// count for the two sides.
func (l Loadout) Counts() []PlateCount {
	perClass := make(map[Weight]int)
	for _, w := range l.Plates {
		perClass[w]++
	}
	var out []PlateCount
	for _, c := range Catalog {
		if n := perClass[c.Weight]; n > 0 {
			out = append(out, PlateCount{Kg: c.Kg, Count: n * 2})
		}
	}
	return out
}

// Summary formats the loadout as "20 kg x 6, 10 kg x 2".
func (l Loadout) Summary() string {
	counts := l.Counts()
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s kg x %d", MustKg(c.Kg), c.Count)
	}
	return strings.Join(parts, ", ")
}

// Total is the loaded bar weight: bar, collars and both sides of plates.
func (l Loadout) Total() float64 {
	return l.Request.Bar + l.Request.Collars + 2*Sum(l.Plates).Kg()
}

type loadoutJSON struct {
	Request LoadRequest  `json:"request"`
	PerSide float64      `json:"per_side_kg"`
	Plates  []float64    `json:"plates"`
	Counts  []PlateCount `json:"counts"`
	Summary string       `json:"summary"`
	Total   float64      `json:"total_kg"`
}

// MarshalJSON reports weights in kilograms.
func (l Loadout) MarshalJSON() ([]byte, error) {
	kgs := make([]float64, len(l.Plates))
	for i, w := range l.Plates {
		kgs[i] = w.Kg()
	}
	counts := l.Counts()
	if counts == nil {
		counts = []PlateCount{}
	}
	return json.Marshal(loadoutJSON{
		Request: l.Request,
		PerSide: l.PerSide.Kg(),
		Plates:  kgs,
		Counts:  counts,
		Summary: l.Summary(),
		Total:   l.Total(),
	})
}
