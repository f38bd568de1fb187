package ingest

import "github.com/claude/liftcalc/internal/models"

// Result holds the outcome of an ingest operation.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SetsReceived     int `json:"sets_received"`
	SetsEstimated    int `json:"sets_estimated"`
	SetsSkipped      int `json:"sets_skipped"`

	Bias      string                `json:"bias"`
	Exercises []models.ExerciseBest `json:"exercises"`

	Message string `json:"message,omitempty"`
}
