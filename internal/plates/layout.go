package plates

// Rect is an axis-aligned rectangle in diagram units.
type Rect struct {
	X, Y, W, H float64
	Color      string
}

// Geometry sizes the loaded-bar diagram.
type Geometry struct {
	Width, Height float64

	BarWidth, BarHeight float64
	SleeveWidth         float64
	CollarWidth         float64
	PlateWidthScale     float64
	PlateHeightScale    float64
	PlateGap            float64
}

// DefaultGeometry matches a 600x300 canvas.
var DefaultGeometry = Geometry{
	Width:            600,
	Height:           300,
	BarWidth:         400,
	BarHeight:        10,
	SleeveWidth:      80,
	CollarWidth:      10,
	PlateWidthScale:  5.5,
	PlateHeightScale: 2.9,
	PlateGap:         2,
}

// Diagram is the bar, its sleeves and the plates on both sides.
type Diagram struct {
	Width, Height float64
	Bar           []Rect
	Plates        []Rect
}

// Layout places the per-side plates symmetrically, innermost first, working
// outward from the collar on each sleeve. Weights missing from the Catalog are
// skipped.
func Layout(perSide []Weight, g Geometry) Diagram {
	sleeveHeight := g.BarHeight * 2
	collarHeight := sleeveHeight * 2
	barX := (g.Width - g.BarWidth) / 2
	barY := (g.Height - g.BarHeight) / 2
	sleeveY := barY - sleeveHeight/4
	centerY := barY + sleeveHeight/4

	d := Diagram{Width: g.Width, Height: g.Height}
	d.Bar = []Rect{
		{X: barX, Y: barY, W: g.BarWidth, H: g.BarHeight, Color: "black"},
		{X: barX, Y: sleeveY, W: g.SleeveWidth, H: sleeveHeight, Color: "black"},
		{X: barX + g.BarWidth - g.SleeveWidth, Y: sleeveY, W: g.SleeveWidth, H: sleeveHeight, Color: "black"},
		{X: barX + g.SleeveWidth, Y: sleeveY - collarHeight/4, W: g.CollarWidth, H: collarHeight, Color: "black"},
		{X: barX + g.BarWidth - g.SleeveWidth - g.CollarWidth, Y: sleeveY - collarHeight/4, W: g.CollarWidth, H: collarHeight, Color: "black"},
	}

	leftX := barX + g.SleeveWidth
	rightX := barX + g.BarWidth - g.SleeveWidth
	for _, w := range perSide {
		c, err := Lookup(w)
		if err != nil {
			continue
		}
		pw := c.Width * g.PlateWidthScale
		ph := c.Diameter * g.PlateHeightScale
		y := centerY - ph/2
		d.Plates = append(d.Plates,
			Rect{X: leftX - pw, Y: y, W: pw, H: ph, Color: c.Color},
			Rect{X: rightX, Y: y, W: pw, H: ph, Color: c.Color},
		)
		leftX -= pw + g.PlateGap
		rightX += pw + g.PlateGap
	}
	return d
}
