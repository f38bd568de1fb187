package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
)

// Calculator abstracts the calculators behind the MCP tools. Local runs them
// in process; HTTPClient calls a liftcalc server's JSON API.
type Calculator interface {
	Estimate(ctx context.Context, req rpe.Request) (*Estimate, error)
	SolvePlates(ctx context.Context, req plates.LoadRequest, s plates.Strategy) (*Loadout, error)
	RPETable(ctx context.Context, b rpe.Bias) (*RPETable, error)
	Catalog(ctx context.Context) ([]plates.Class, error)
}

// Estimate is an e1RM answer.
type Estimate struct {
	Request    rpe.Request `json:"request"`
	E1RM       float64     `json:"e1rm"`
	Percentage float64     `json:"percentage"`
}

// Loadout is a solved plate request in kilograms.
type Loadout struct {
	PerSide float64             `json:"per_side_kg"`
	Plates  []float64           `json:"plates"`
	Counts  []plates.PlateCount `json:"counts"`
	Summary string              `json:"summary"`
	Total   float64             `json:"total_kg"`
}

// RPETable is one bias's percentage chart. Rows[i][j] is the percentage of
// 1RM for RPE[i] and j+1 reps.
type RPETable struct {
	Bias string      `json:"bias"`
	RPE  []float64   `json:"rpe"`
	Rows [][]float64 `json:"rows"`
}

// Local computes in process.
type Local struct{}

// Compile-time check: Local satisfies Calculator.
var _ Calculator = Local{}

func (Local) Estimate(_ context.Context, req rpe.Request) (*Estimate, error) {
	pct, err := rpe.Percentage(req.Reps, req.RPE, req.Bias)
	if err != nil {
		return nil, err
	}
	e1rm, err := rpe.Estimate(req)
	if err != nil {
		return nil, err
	}
	return &Estimate{Request: req, E1RM: e1rm, Percentage: pct}, nil
}

func (Local) SolvePlates(_ context.Context, req plates.LoadRequest, s plates.Strategy) (*Loadout, error) {
	l, err := plates.Plan(req, s)
	if err != nil {
		return nil, err
	}
	kgs := make([]float64, len(l.Plates))
	for i, w := range l.Plates {
		kgs[i] = w.Kg()
	}
	counts := l.Counts()
	if counts == nil {
		counts = []plates.PlateCount{}
	}
	return &Loadout{
		PerSide: l.PerSide.Kg(),
		Plates:  kgs,
		Counts:  counts,
		Summary: l.Summary(),
		Total:   l.Total(),
	}, nil
}

func (Local) RPETable(_ context.Context, b rpe.Bias) (*RPETable, error) {
	t, err := rpe.TableFor(b)
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, len(t))
	for i := range t {
		rows[i] = t[i][:]
	}
	return &RPETable{Bias: b.String(), RPE: rpe.RPEs(), Rows: rows}, nil
}

func (Local) Catalog(context.Context) ([]plates.Class, error) {
	return plates.Catalog, nil
}

// APIError is a non-200 response from the JSON API. It unwraps to the
// calculator sentinel named by Kind, so errors.Is works across the wire.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("liftcalc API %d %s: %s", e.Status, e.Kind, e.Message)
}

var kindErrors = map[string]error{
	"no_solution":      plates.ErrNoSolution,
	"unknown_plate":    plates.ErrUnknownClass,
	"negative_count":   plates.ErrNegativeCount,
	"count_too_large":  plates.ErrCountTooLarge,
	"target_too_large": plates.ErrTargetTooLarge,
	"unknown_strategy": plates.ErrUnknownStrategy,
	"invalid_rpe":      rpe.ErrInvalidRPE,
	"invalid_reps":     rpe.ErrInvalidReps,
	"invalid_bias":     rpe.ErrInvalidBias,
}

func (e *APIError) Unwrap() error {
	return kindErrors[e.Kind]
}

// isInputError reports whether err is the caller's fault rather than a
// transport or server failure.
func isInputError(err error) bool {
	for _, sentinel := range kindErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
