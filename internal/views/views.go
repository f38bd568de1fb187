// Package views renders the HTML pages. Components are written in .templ
// files; run `templ generate` after editing them.
package views

import (
	"context"
	"strconv"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
)

// AppName is shown in page titles and the header.
const AppName = "liftcalc"

// PageTitle appends the app name to a page title.
func PageTitle(title string) string {
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}

// PlatePage is the state of the plate calculator form and its result.
type PlatePage struct {
	Target    float64
	Bar       float64
	Collars   float64
	Inventory plates.Inventory
	Strategy  plates.Strategy

	// Loadout is nil until a request has been solved.
	Loadout *plates.Loadout
	Error   string
}

// PlateField is the form field name holding the count for a plate class.
func PlateField(w plates.Weight) string {
	return "plate_" + w.String()
}

// E1RMPage is the state of the e1RM form and its result.
type E1RMPage struct {
	Request rpe.Request

	// HasResult is set once E1RM holds an estimate for Request.
	HasResult bool
	E1RM      float64
	Error     string
}

var biases = []rpe.Bias{rpe.Low, rpe.Moderate, rpe.High}

// formValue keeps form inputs machine readable regardless of locale.
func formValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func kg(ctx context.Context, v float64) string {
	return FormatNumber(printerFrom(ctx), v) + " kg"
}

func setDescription(ctx context.Context, r rpe.Request) string {
	p := printerFrom(ctx)
	return kg(ctx, r.Weight) + " x " + formValue(r.Reps) + " @ RPE " + FormatNumber(p, r.RPE)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func viewBox(d plates.Diagram) string {
	return "0 0 " + px(d.Width) + " " + px(d.Height)
}
