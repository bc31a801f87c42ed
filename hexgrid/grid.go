package hexgrid

import "iter"

// Rect is a rectangular board of Cols×Rows tiles in offset coordinates.
type Rect struct {
	Cols, Rows int
	Layout     Layout
}

// Len returns the number of tiles.
func (g Rect) Len() int {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0
	}
	return g.Cols * g.Rows
}

// Contains reports whether a lies on the board.
func (g Rect) Contains(a Axial) bool {
	o := a.Offset(g.Layout)
	return o.Col >= 0 && o.Col < g.Cols && o.Row >= 0 && o.Row < g.Rows
}

// Index returns a's position in board order, or -1 when off the board.
func (g Rect) Index(a Axial) int {
	if !g.Contains(a) {
		return -1
	}
	o := a.Offset(g.Layout)
	return o.Row*g.Cols + o.Col
}

// Coords yields every tile in board order: row by row, columns left to right.
func (g Rect) Coords() iter.Seq[Axial] {
	return func(yield func(Axial) bool) {
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if !yield(Offset{Col: col, Row: row}.Axial(g.Layout)) {
					return
				}
			}
		}
	}
}

// Bounds returns the world-space bounding box of the board's tile corners.
func (g Rect) Bounds(radius float64) (lo, hi Vec2) {
	first := true
	for a := range g.Coords() {
		for _, c := range Corners(ToWorld(a, radius, g.Layout), radius, g.Layout) {
			if first {
				lo, hi = c, c
				first = false
				continue
			}
			lo = Vec2{min(lo.X, c.X), min(lo.Y, c.Y)}
			hi = Vec2{max(hi.X, c.X), max(hi.Y, c.Y)}
		}
	}
	return lo, hi
}
