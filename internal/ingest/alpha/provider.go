package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/rpe"
)

// Provider processes Alpha Progression CSV exports into e1RM summaries.
type Provider struct {
	bias rpe.Bias
	log  *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider that estimates
// with the given bias.
func NewProvider(bias rpe.Bias, log *slog.Logger) *Provider {
	return &Provider{bias: bias, log: log}
}

// Ingest parses a CSV export and summarises the best e1RM per exercise.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := Summarize(sessions, p.bias)
	if len(sessions) == 0 {
		result.Message = "no sessions found"
	}
	p.log.Info("alpha import summarised",
		"sessions", result.SessionsReceived,
		"sets", result.SetsReceived,
		"estimated", result.SetsEstimated,
		"skipped", result.SetsSkipped,
		"exercises", len(result.Exercises),
		"bias", result.Bias,
	)
	return result, nil
}
