package plates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Class is a plate weight category.
type Class struct {
	Weight   Weight  `json:"-"`
	Kg       float64 `json:"kg"`
	Color    string  `json:"color"`
	Width    float64 `json:"width_cm"`
	Diameter float64 `json:"diameter_cm"`
}

// Catalog lists the plate classes heaviest first. Colors follow the
// competition convention; sizes are physical dimensions in centimetres.
var Catalog = []Class{
	newClass(25, "red", 2.7, 45),
	newClass(20, "blue", 2.25, 45),
	newClass(15, "yellow", 2.1, 40),
	newClass(10, "green", 2.1, 32.5),
	newClass(5, "white", 2.15, 22.8),
	newClass(2.5, "black", 1.6, 19),
	newClass(1.25, "gray", 1.2, 16),
	newClass(0.5, "gray", 0.8, 13.4),
	newClass(0.25, "gray", 0.6, 11.2),
}

// ErrUnknownClass is returned for a weight that is not in the Catalog.
var ErrUnknownClass = errors.New("unknown plate class")

func newClass(kg float64, color string, width, diameter float64) Class {
	return Class{Weight: MustKg(kg), Kg: kg, Color: color, Width: width, Diameter: diameter}
}

// Lookup returns the catalog entry for a plate weight.
func Lookup(w Weight) (Class, error) {
	for _, c := range Catalog {
		if c.Weight == w {
			return c, nil
		}
	}
	return Class{}, fmt.Errorf("%w: %s kg", ErrUnknownClass, w)
}

// ParseClass parses a plate label such as "20" or "1.25".
func ParseClass(s string) (Weight, error) {
	kg, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
	w, ok := FromKg(kg)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
	if _, err := Lookup(w); err != nil {
		return 0, err
	}
	return w, nil
}
