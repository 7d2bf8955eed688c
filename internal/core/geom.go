// Package core provides the screen, geometry and input types shared by the
// game and its front-ends.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an integer rectangle in screen cells, used for drawing boxes.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned box in field units (pixels of the play field).
type Box struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal extents overlap.
// Touching edges do not count.
func (b Box) OverlapsX(other Box) bool {
	return b.Right() > other.X && b.X < other.Right()
}

// Scaler maps field coordinates onto a cell grid.
type Scaler struct {
	SX, SY float64
}

// NewScaler returns a scaler that fits a fieldW x fieldH field into cols x rows cells.
func NewScaler(fieldW, fieldH float64, cols, rows int) Scaler {
	if fieldW <= 0 || fieldH <= 0 {
		return Scaler{}
	}
	return Scaler{SX: float64(cols) / fieldW, SY: float64(rows) / fieldH}
}

// Col converts a field x-coordinate to a column.
func (s Scaler) Col(x float64) int {
	return floorInt(x * s.SX)
}

// Row converts a field y-coordinate to a row.
func (s Scaler) Row(y float64) int {
	return floorInt(y * s.SY)
}

// Cells converts a box to the cell rectangle it covers. Non-empty boxes always
// cover at least one cell so thin objects stay visible.
func (s Scaler) Cells(b Box) Rect {
	x0, y0 := s.Col(b.X), s.Row(b.Y)
	x1, y1 := s.Col(b.Right()), s.Row(b.Bottom())
	w, h := x1-x0, y1-y0
	if b.W > 0 && w < 1 {
		w = 1
	}
	if b.H > 0 && h < 1 {
		h = 1
	}
	return NewRect(x0, y0, w, h)
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
