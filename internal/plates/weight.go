package plates

import (
	"math"
	"strconv"
)

// Weight is a mass in quarter-kilogram units. Every plate class is a whole
// number of quarters, so sums and differences stay exact.
type Weight int64

// Quarter is the smallest plate increment.
const Quarter Weight = 1

const (
	unitsPerKg = 4
	kgEpsilon  = 1e-9
)

// FromKg converts kilograms to a Weight. ok is false when kg is not finite or
// not a whole number of quarter kilograms.
func FromKg(kg float64) (w Weight, ok bool) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return 0, false
	}
	units := math.Round(kg * unitsPerKg)
	if math.Abs(kg*unitsPerKg-units) > kgEpsilon*unitsPerKg {
		return 0, false
	}
	return Weight(units), true
}

// MustKg is FromKg for constants known to be exact.
func MustKg(kg float64) Weight {
	w, ok := FromKg(kg)
	if !ok {
		panic("plates: " + strconv.FormatFloat(kg, 'g', -1, 64) + " kg is not a quarter-kilogram multiple")
	}
	return w
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return float64(w) / unitsPerKg
}

// String formats the weight the way plates are labelled: "20", "2.5", "0.25".
func (w Weight) String() string {
	return strconv.FormatFloat(w.Kg(), 'f', -1, 64)
}

// Sum adds up a plate sequence.
func Sum(ws []Weight) Weight {
	var total Weight
	for _, w := range ws {
		total += w
	}
	return total
}
