// Package rpe estimates one-rep maxes from submaximal sets using static
// RPE percentage tables.
package rpe

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Bias picks the percentage curve used for higher rep counts.
type Bias int

const (
	Low Bias = iota
	Moderate
	High
)

var (
	// ErrInvalidRPE is returned for an RPE outside {0, 0.5, ..., 10}.
	ErrInvalidRPE = errors.New("invalid RPE")
	// ErrInvalidReps is returned for reps that are not a whole number in [1, 30].
	ErrInvalidReps = errors.New("invalid reps")
	// ErrInvalidBias is returned for an unknown Bias.
	ErrInvalidBias = errors.New("invalid rep bias")
)

func (b Bias) String() string {
	switch b {
	case Low:
		return "low"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	}
	return fmt.Sprintf("Bias(%d)", int(b))
}

// ParseBias accepts "low", "moderate" or "high", case-insensitively, and the
// numeric form "0".."2" used by select inputs.
func ParseBias(s string) (Bias, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "0":
		return Low, nil
	case "moderate", "1":
		return Moderate, nil
	case "high", "2":
		return High, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBias, s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Bias) MarshalText() ([]byte, error) {
	if _, ok := tables[b]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBias, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bias) UnmarshalText(text []byte) error {
	parsed, err := ParseBias(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// UnmarshalJSON accepts a bias name or its number, so "high" and 2 both
// decode. Anything else is ErrInvalidBias.
func (b *Bias) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidBias, data)
		}
	} else {
		s = string(data)
	}
	return b.UnmarshalText([]byte(s))
}

// Request is one e1RM question. Reps is a float so that fractional input
// is reported as ErrInvalidReps rather than silently truncated.
type Request struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	RPE    float64 `json:"rpe"`
	Bias   Bias    `json:"bias"`
}

// Estimate returns weight / (percentage / 100), unrounded.
func Estimate(r Request) (float64, error) {
	pct, err := Percentage(r.Reps, r.RPE, r.Bias)
	if err != nil {
		return 0, err
	}
	return r.Weight / (pct / 100), nil
}

// Percentage looks up the percentage of 1RM a set of reps at rpe represents.
// RPE is validated before reps.
func Percentage(reps, rpe float64, b Bias) (float64, error) {
	row, ok := rowFor(rpe)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRPE, rpe)
	}
	col, ok := columnFor(reps)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidReps, reps)
	}
	t, ok := tables[b]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBias, int(b))
	}
	return t[row][col], nil
}

// LoadFor is the inverse of Estimate: the weight that a set of reps at rpe
// calls for given an e1RM.
func LoadFor(e1rm, reps, rpe float64, b Bias) (float64, error) {
	pct, err := Percentage(reps, rpe, b)
	if err != nil {
		return 0, err
	}
	return e1rm * pct / 100, nil
}

// RPEFromRIR converts reps in reserve to RPE (10 - RIR).
func RPEFromRIR(rir float64) float64 {
	return 10 - rir
}

func rowFor(rpe float64) (int, bool) {
	halves := rpe * 2
	if math.IsNaN(halves) || halves != math.Trunc(halves) || halves < 0 || halves > 20 {
		return 0, false
	}
	return 20 - int(halves), true
}

func columnFor(reps float64) (int, bool) {
	if math.IsNaN(reps) || reps != math.Trunc(reps) || reps < 1 || reps > MaxReps {
		return 0, false
	}
	return int(reps) - 1, true
}
