package plates

import (
	"errors"
	"fmt"
)

// ErrNoSolution is returned when no combination of the available plates
// reaches the per-side target. It is a normal outcome, not a failure.
var ErrNoSolution = errors.New("no plate combination reaches the target")

// ErrUnknownStrategy is returned by ParseStrategy for an unrecognised name.
var ErrUnknownStrategy = errors.New("unknown solver strategy")

// Strategy selects how the breadth-first search deduplicates states.
type Strategy string

const (
	// StrategyBounded consumes plates from the per-side inventory and keys
	// visited states by (remaining, last class, plates of that class used).
	// States sharing a key have the same reachable futures, so the first
	// solution found uses the fewest plates.
	StrategyBounded Strategy = "bounded"

	// StrategyLegacy keys visited states by remaining weight alone and never
	// consumes plates: any class present may be reused without limit.
	StrategyLegacy Strategy = "legacy"
)

// ParseStrategy accepts "bounded", "legacy" or "" (bounded).
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyBounded:
		return StrategyBounded, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStrategy, s)
}

// Solve finds plates for one side of the bar using StrategyBounded.
func Solve(perSide Weight, available []Weight) ([]Weight, error) {
	return StrategyBounded.Solve(perSide, available)
}

// Solve runs the breadth-first search. available is the flat per-side plate
// list (see Inventory.PerSide). The result is in discovery order and sums to
// perSide exactly.
func (s Strategy) Solve(perSide Weight, available []Weight) ([]Weight, error) {
	switch {
	case perSide < 0:
		return nil, ErrNoSolution
	case perSide == 0:
		return []Weight{}, nil
	case len(available) == 0:
		return nil, ErrNoSolution
	}

	groups := groupPlates(available)
	if s == StrategyLegacy {
		return solveLegacy(perSide, groups)
	}
	return solveBounded(perSide, groups)
}

// plateGroup is one distinct plate weight and how many are usable per side.
type plateGroup struct {
	weight Weight
	count  int
}

// groupPlates collapses the flat list, keeping first-appearance order.
func groupPlates(available []Weight) []plateGroup {
	index := make(map[Weight]int)
	var groups []plateGroup
	for _, w := range available {
		if w <= 0 {
			continue
		}
		if i, ok := index[w]; ok {
			groups[i].count++
			continue
		}
		index[w] = len(groups)
		groups = append(groups, plateGroup{weight: w, count: 1})
	}
	return groups
}

// node is a search state. Nodes are appended to a single slice that doubles
// as the FIFO queue; parent links rebuild the plate sequence.
type node struct {
	remaining Weight
	group     int
	used      int
	parent    int
	plate     Weight
}

type boundedKey struct {
	remaining Weight
	group     int
	used      int
}

func solveBounded(perSide Weight, groups []plateGroup) ([]Weight, error) {
	nodes := []node{{remaining: perSide, parent: -1}}
	visited := map[boundedKey]bool{{remaining: perSide}: true}

	for head := 0; head < len(nodes); head++ {
		cur := nodes[head]
		if cur.remaining == 0 {
			return path(nodes, head), nil
		}
		// Only extend with the current group or later ones so each multiset
		// is generated in a single canonical order.
		for g := cur.group; g < len(groups); g++ {
			used := 0
			if g == cur.group {
				used = cur.used
			}
			if used >= groups[g].count {
				continue
			}
			next := cur.remaining - groups[g].weight
			if next < 0 {
				continue
			}
			key := boundedKey{remaining: next, group: g, used: used + 1}
			if visited[key] {
				continue
			}
			visited[key] = true
			nodes = append(nodes, node{remaining: next, group: g, used: used + 1, parent: head, plate: groups[g].weight})
		}
	}
	return nil, ErrNoSolution
}

func solveLegacy(perSide Weight, groups []plateGroup) ([]Weight, error) {
	nodes := []node{{remaining: perSide, parent: -1}}
	visited := map[Weight]bool{perSide: true}

	for head := 0; head < len(nodes); head++ {
		cur := nodes[head]
		if cur.remaining == 0 {
			return path(nodes, head), nil
		}
		for _, g := range groups {
			next := cur.remaining - g.weight
			if next < 0 || visited[next] {
				continue
			}
			visited[next] = true
			nodes = append(nodes, node{remaining: next, parent: head, plate: g.weight})
		}
	}
	return nil, ErrNoSolution
}

func path(nodes []node, i int) []Weight {
	var depth int
	for j := i; nodes[j].parent >= 0; j = nodes[j].parent {
		depth++
	}
	out := make([]Weight, depth)
	for j := i; nodes[j].parent >= 0; j = nodes[j].parent {
		depth--
		out[depth] = nodes[j].plate
	}
	return out
}
