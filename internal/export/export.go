// Package export writes RPE and plate-loading charts to spreadsheets.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Biases is the sheet order of RPE charts.
var Biases = []rpe.Bias{rpe.Low, rpe.Moderate, rpe.High}

// RPESheetName names the chart sheet for a bias.
func RPESheetName(b rpe.Bias) string {
	return "RPE " + b.String()
}

// Workbook is a spreadsheet under construction.
type Workbook struct {
	f      *excelize.File
	header int
	number int
	used   bool
}

// New creates an empty workbook with the shared cell styles.
func New() (*Workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	oneDecimal := "0.0"
	number, err := f.NewStyle(&excelize.Style{CustomNumFmt: &oneDecimal})
	if err != nil {
		return nil, fmt.Errorf("creating number style: %w", err)
	}
	return &Workbook{f: f, header: header, number: number}, nil
}

// File exposes the underlying spreadsheet.
func (w *Workbook) File() *excelize.File {
	return w.f
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Close releases the workbook's temporary files.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// sheet returns a fresh sheet named name. The default sheet is renamed for
// the first call so the workbook has no empty leftover.
func (w *Workbook) sheet(name string) error {
	if !w.used {
		w.used = true
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("naming sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %q: %w", name, err)
	}
	return nil
}

func (w *Workbook) set(sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.f.SetCellValue(sheet, cell, v)
}

func (w *Workbook) styleRange(sheet string, col1, row1, col2, row2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, from, to, style)
}

func (w *Workbook) freezeHeader(sheet string, cols int) error {
	topLeft, err := excelize.CoordinatesToCellName(cols+1, 2)
	if err != nil {
		return err
	}
	return w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}

// AddRPECharts writes one sheet per bias: RPE down column A, reps across
// row 1, percentage of 1RM in the body.
func (w *Workbook) AddRPECharts() error {
	for _, b := range Biases {
		if err := w.addRPEChart(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) addRPEChart(b rpe.Bias) error {
	t, err := rpe.TableFor(b)
	if err != nil {
		return err
	}
	sheet := RPESheetName(b)
	if err := w.sheet(sheet); err != nil {
		return err
	}

	if err := w.set(sheet, 1, 1, "RPE \\ Reps"); err != nil {
		return err
	}
	for reps := 1; reps <= rpe.MaxReps; reps++ {
		if err := w.set(sheet, reps+1, 1, reps); err != nil {
			return err
		}
	}
	for i, v := range rpe.RPEs() {
		row := i + 2
		if err := w.set(sheet, 1, row, v); err != nil {
			return err
		}
		for j, pct := range t[i] {
			if err := w.set(sheet, j+2, row, pct); err != nil {
				return err
			}
		}
	}

	last := rpe.Rows + 1
	if err := w.styleRange(sheet, 1, 1, rpe.MaxReps+1, 1, w.header); err != nil {
		return err
	}
	if err := w.styleRange(sheet, 1, 2, 1, last, w.header); err != nil {
		return err
	}
	if err := w.styleRange(sheet, 2, 2, rpe.MaxReps+1, last, w.number); err != nil {
		return err
	}
	return w.freezeHeader(sheet, 1)
}

// LoadsSheet is the plate-loading chart sheet name.
const LoadsSheet = "Loads"

// MaxLoadRows caps the rows a load chart may hold.
const MaxLoadRows = 4000

// LoadRange is an inclusive range of bar weights.
type LoadRange struct {
	From, To, Step float64
}

// ParseLoadRange parses "from:to:step", e.g. "60:200:2.5".
func ParseLoadRange(s string) (LoadRange, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return LoadRange{}, fmt.Errorf("load range %q: want from:to:step", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return LoadRange{}, fmt.Errorf("load range %q: %w", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return LoadRange{}, fmt.Errorf("load range %q: %s is not a finite number", s, p)
		}
		vals[i] = v
	}
	r := LoadRange{From: vals[0], To: vals[1], Step: vals[2]}
	if !(r.Step > 0) || !(r.From <= r.To) {
		return LoadRange{}, fmt.Errorf("load range %q: need step > 0 and from <= to", s)
	}
	if (r.To-r.From)/r.Step >= MaxLoadRows {
		return LoadRange{}, fmt.Errorf("load range %q: more than %d rows", s, MaxLoadRows)
	}
	return r, nil
}

// Targets lists the weights in the range. Steps are counted rather than
// accumulated so 0.25 kg increments stay exact.
func (r LoadRange) Targets() []float64 {
	n := int(math.Floor((r.To-r.From)/r.Step+1e-9)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.From+float64(i)*r.Step)
	}
	return out
}

// AddLoadChart writes one row per target weight with the plates to load.
// Unreachable targets get "no solution" instead of a loadout.
func (w *Workbook) AddLoadChart(base plates.LoadRequest, s plates.Strategy, r LoadRange) error {
	if err := w.sheet(LoadsSheet); err != nil {
		return err
	}
	headers := []string{"Target (kg)", "Per side (kg)", "Plates per side", "Plates"}
	for i, h := range headers {
		if err := w.set(LoadsSheet, i+1, 1, h); err != nil {
			return err
		}
	}

	row := 1
	for _, target := range r.Targets() {
		row++
		req := base
		req.Target = target
		if err := w.set(LoadsSheet, 1, row, target); err != nil {
			return err
		}
		l, err := plates.Plan(req, s)
		if err != nil {
			if err := w.set(LoadsSheet, 4, row, "no solution"); err != nil {
				return err
			}
			continue
		}
		if err := w.set(LoadsSheet, 2, row, l.PerSide.Kg()); err != nil {
			return err
		}
		if err := w.set(LoadsSheet, 3, row, len(l.Plates)); err != nil {
			return err
		}
		if err := w.set(LoadsSheet, 4, row, l.Summary()); err != nil {
			return err
		}
	}

	if err := w.styleRange(LoadsSheet, 1, 1, len(headers), 1, w.header); err != nil {
		return err
	}
	if err := w.f.SetColWidth(LoadsSheet, "A", "C", 16); err != nil {
		return err
	}
	if err := w.f.SetColWidth(LoadsSheet, "D", "D", 48); err != nil {
		return err
	}
	return w.freezeHeader(LoadsSheet, 1)
}

// WorkingSetsSheet names the training-weight chart for an e1RM.
func WorkingSetsSheet(b rpe.Bias) string {
	return "Loads " + b.String()
}

// AddWorkingSets writes the weight that each reps x RPE combination calls
// for at the given e1RM, rounded down to the nearest multiple of round.
func (w *Workbook) AddWorkingSets(e1rm float64, b rpe.Bias, round float64) error {
	if e1rm <= 0 || round <= 0 {
		return fmt.Errorf("working sets: e1RM and rounding must be positive")
	}
	sheet := WorkingSetsSheet(b)
	if err := w.sheet(sheet); err != nil {
		return err
	}
	if err := w.set(sheet, 1, 1, "RPE \\ Reps"); err != nil {
		return err
	}
	const maxReps = 12
	for reps := 1; reps <= maxReps; reps++ {
		if err := w.set(sheet, reps+1, 1, reps); err != nil {
			return err
		}
	}
	row := 1
	for _, v := range rpe.RPEs() {
		if v < 5 {
			break
		}
		row++
		if err := w.set(sheet, 1, row, v); err != nil {
			return err
		}
		for reps := 1; reps <= maxReps; reps++ {
			load, err := rpe.LoadFor(e1rm, float64(reps), v, b)
			if err != nil {
				return err
			}
			if err := w.set(sheet, reps+1, row, math.Floor(load/round+1e-9)*round); err != nil {
				return err
			}
		}
	}
	if err := w.styleRange(sheet, 1, 1, maxReps+1, 1, w.header); err != nil {
		return err
	}
	if err := w.styleRange(sheet, 1, 2, 1, row, w.header); err != nil {
		return err
	}
	return w.freezeHeader(sheet, 1)
}
