package rpe

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// Rows is the number of RPE rows, 10 down to 0 in half steps.
	Rows = 21
	// MaxReps is the number of rep columns.
	MaxReps = 30
)

// Table holds percentage-of-1RM values indexed [row][reps-1], where row 0 is
// RPE 10 and row 20 is RPE 0.
type Table [Rows][MaxReps]float64

//go:embed tables.yaml
var tablesYAML []byte

var tables = mustDecodeTables(tablesYAML)

type tableFile struct {
	Low      [][]float64 `yaml:"low"`
	Moderate [][]float64 `yaml:"moderate"`
	High     [][]float64 `yaml:"high"`
}

func mustDecodeTables(data []byte) map[Bias]*Table {
	t, err := decodeTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

func decodeTables(data []byte) (map[Bias]*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rpe tables: %w", err)
	}
	out := make(map[Bias]*Table, 3)
	for bias, rows := range map[Bias][][]float64{Low: f.Low, Moderate: f.Moderate, High: f.High} {
		t, err := toTable(rows)
		if err != nil {
			return nil, fmt.Errorf("rpe table %s: %w", bias, err)
		}
		out[bias] = t
	}
	return out, nil
}

func toTable(rows [][]float64) (*Table, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("got %d rows, want %d", len(rows), Rows)
	}
	var t Table
	for i, row := range rows {
		if len(row) != MaxReps {
			return nil, fmt.Errorf("row %d: got %d columns, want %d", i, len(row), MaxReps)
		}
		for j, pct := range row {
			if pct <= 0 || pct > 100 {
				return nil, fmt.Errorf("row %d column %d: percentage %g out of range", i, j, pct)
			}
		}
		copy(t[i][:], row)
	}
	return &t, nil
}

// TableFor returns a copy of the table for a bias.
func TableFor(b Bias) (Table, error) {
	t, ok := tables[b]
	if !ok {
		return Table{}, fmt.Errorf("%w: %d", ErrInvalidBias, int(b))
	}
	return *t, nil
}

// RPEs lists the valid RPE values in row order, 10 down to 0.
func RPEs() []float64 {
	out := make([]float64, Rows)
	for i := range out {
		out[i] = rpeForRow(i)
	}
	return out
}

func rpeForRow(row int) float64 {
	return 10 - float64(row)/2
}
