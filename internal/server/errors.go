package server

import (
	"errors"
	"net/http"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
)

// errorKind maps a calculator error to an HTTP status and a stable kind
// string for API clients.
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, plates.ErrNoSolution):
		return http.StatusUnprocessableEntity, "no_solution"
	case errors.Is(err, plates.ErrUnknownClass):
		return http.StatusUnprocessableEntity, "unknown_plate"
	case errors.Is(err, plates.ErrNegativeCount):
		return http.StatusUnprocessableEntity, "negative_count"
	case errors.Is(err, plates.ErrCountTooLarge):
		return http.StatusUnprocessableEntity, "count_too_large"
	case errors.Is(err, plates.ErrTargetTooLarge):
		return http.StatusUnprocessableEntity, "target_too_large"
	case errors.Is(err, plates.ErrUnknownStrategy):
		return http.StatusUnprocessableEntity, "unknown_strategy"
	case errors.Is(err, rpe.ErrInvalidRPE):
		return http.StatusUnprocessableEntity, "invalid_rpe"
	case errors.Is(err, rpe.ErrInvalidReps):
		return http.StatusUnprocessableEntity, "invalid_reps"
	case errors.Is(err, rpe.ErrInvalidBias):
		return http.StatusUnprocessableEntity, "invalid_bias"
	}
	return http.StatusBadRequest, "bad_request"
}

// userMessage is the text shown on the HTML pages.
func userMessage(err error) string {
	switch {
	case errors.Is(err, plates.ErrNoSolution):
		return "No solution: " + err.Error()
	case errors.Is(err, rpe.ErrInvalidRPE):
		return "Invalid RPE: must be 0 to 10 in steps of 0.5."
	case errors.Is(err, rpe.ErrInvalidReps):
		return "Invalid Reps: must be a whole number from 1 to 30."
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := errorKind(err)
	writeJSON(w, status, map[string]string{"error": err.Error(), "kind": kind})
}
