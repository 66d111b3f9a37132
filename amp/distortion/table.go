package distortion

import "math"

// Table geometry: TableSize entries evenly spaced over [-TableRange, TableRange).
const (
	TableSize  = 1024
	TableRange = 4.0

	tableStep  = 2 * TableRange / TableSize
	tableScale = TableSize / (2 * TableRange)
	tableZero  = TableSize / 2
)

// Table is an immutable lookup of the asymmetric shaping curve.
type Table struct {
	y [TableSize]float64
}

// NewTable builds the curve from Shape.
func NewTable() *Table {
	t := &Table{}
	for i := range t.y {
		t.y[i] = Shape(float64(i-tableZero) * tableStep)
	}

	return t
}

var defaultTable = NewTable()

// DefaultTable returns the shared, read-only table.
func DefaultTable() *Table {
	return defaultTable
}

// Shape is the closed-form transfer curve the table samples. The positive
// half compresses softly with unit slope at the origin; the negative half
// clips harder and lower, which adds even harmonics.
func Shape(x float64) float64 {
	if x >= 0 {
		return math.Atan(x / (1 + x))
	}

	return 0.8 * math.Atan(x/(1-0.7*x))
}

// Lookup returns the linearly interpolated curve at x. Inputs beyond the
// table range clamp to the range edges.
func (t *Table) Lookup(x float64) float64 {
	if !(x > -TableRange) {
		return t.y[0]
	}

	pos := (x + TableRange) * tableScale
	if pos >= TableSize-1 {
		return t.y[TableSize-1]
	}

	i := int(pos)
	frac := pos - float64(i)
	y0 := t.y[i]

	return y0 + frac*(t.y[i+1]-y0)
}

// At returns entry i. It panics when i is outside [0, TableSize).
func (t *Table) At(i int) float64 {
	return t.y[i]
}
