package plates

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Inventory maps a plate class to the total number of plates on hand. Plates
// are loaded in pairs, so only Count/2 of each class is usable per side.
type Inventory map[Weight]int

// MaxCount is the most plates of one class an inventory may hold.
const MaxCount = 100

var (
	// ErrNegativeCount is returned when an inventory holds a negative count.
	ErrNegativeCount = errors.New("negative plate count")

	// ErrCountTooLarge is returned when a class holds more than MaxCount plates.
	ErrCountTooLarge = errors.New("plate count too large")
)

// ParseInventory builds an Inventory from kilogram labels ("20": 6).
func ParseInventory(counts map[string]int) (Inventory, error) {
	inv := make(Inventory, len(counts))
	for label, n := range counts {
		w, err := ParseClass(label)
		if err != nil {
			return nil, err
		}
		inv[w] += n
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate reports unknown classes and counts outside 0..MaxCount.
func (inv Inventory) Validate() error {
	for w, n := range inv {
		if _, err := Lookup(w); err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %d of %s kg", ErrNegativeCount, n, w)
		}
		if n > MaxCount {
			return fmt.Errorf("%w: %d of %s kg, at most %d", ErrCountTooLarge, n, w, MaxCount)
		}
	}
	return nil
}

// PerSide returns the flat list of plates usable on one side of the bar,
// heaviest class first. An odd count loses its unpaired plate.
func (inv Inventory) PerSide() []Weight {
	var out []Weight
	for _, c := range Catalog {
		for i := 0; i < inv[c.Weight]/2; i++ {
			out = append(out, c.Weight)
		}
	}
	return out
}

// Labels returns the inventory keyed by kilogram label.
func (inv Inventory) Labels() map[string]int {
	out := make(map[string]int, len(inv))
	for w, n := range inv {
		out[w.String()] = n
	}
	return out
}

// Classes returns the classes present in the inventory, heaviest first.
func (inv Inventory) Classes() []Weight {
	out := make([]Weight, 0, len(inv))
	for w, n := range inv {
		if n > 0 {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// MarshalJSON encodes the inventory with kilogram labels as keys.
func (inv Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inv.Labels())
}

// UnmarshalJSON decodes {"20": 6, "2.5": 4}.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	parsed, err := ParseInventory(counts)
	if err != nil {
		return err
	}
	*inv = parsed
	return nil
}
