package hexgrid

import "fmt"

// Axial addresses a hex by two coordinates; the third cube coordinate is
// S = -Q-R.
type Axial struct {
	Q, R int
}

func (a Axial) S() int { return -a.Q - a.R }

func (a Axial) Add(o Axial) Axial { return Axial{a.Q + o.Q, a.R + o.R} }

func (a Axial) String() string { return fmt.Sprintf("(%d,%d)", a.Q, a.R) }

// Distance is the number of steps between two hexes.
func (a Axial) Distance(o Axial) int {
	dq, dr, ds := a.Q-o.Q, a.R-o.R, a.S()-o.S()
	return max(abs(dq), abs(dr), abs(ds))
}

// Less orders coordinates by Q, then R.
func (a Axial) Less(o Axial) bool {
	return a.Q < o.Q || (a.Q == o.Q && a.R < o.R)
}

// Offset addresses a hex on a rectangular board: odd rows shifted right for
// pointy-top layouts ("odd-r"), odd columns shifted down for flat-top ("odd-q").
type Offset struct {
	Col, Row int
}

// Axial converts board coordinates for the given layout.
func (o Offset) Axial(l Layout) Axial {
	if l == FlatTop {
		return Axial{Q: o.Col, R: o.Row - (o.Col-(o.Col&1))/2}
	}
	return Axial{Q: o.Col - (o.Row-(o.Row&1))/2, R: o.Row}
}

// Offset converts to board coordinates for the given layout.
func (a Axial) Offset(l Layout) Offset {
	if l == FlatTop {
		return Offset{Col: a.Q, Row: a.R + (a.Q-(a.Q&1))/2}
	}
	return Offset{Col: a.Q + (a.R-(a.R&1))/2, Row: a.R}
}

// Directions lists the six axial neighbor offsets, counter-clockwise starting
// east. Road enumeration depends on this order being fixed.
var Directions = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hexes in Directions order.
func Neighbors(a Axial) [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = a.Add(d)
	}
	return out
}

// Edge is an undirected adjacency between two hexes. NewEdge keeps A before B
// so both orientations of a pair compare equal.
type Edge struct {
	A, B Axial
}

// NewEdge canonicalizes the pair (a, b).
func NewEdge(a, b Axial) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Key packs the canonical pair into one integer. Each coordinate must fit in
// an int16, which holds for any board this package builds.
func (e Edge) Key() uint64 {
	e = NewEdge(e.A, e.B)
	return uint64(uint16(int16(e.A.Q)))<<48 |
		uint64(uint16(int16(e.A.R)))<<32 |
		uint64(uint16(int16(e.B.Q)))<<16 |
		uint64(uint16(int16(e.B.R)))
}

// EdgeFromKey reverses Key.
func EdgeFromKey(k uint64) Edge {
	return Edge{
		A: Axial{Q: int(int16(k >> 48)), R: int(int16(k >> 32))},
		B: Axial{Q: int(int16(k >> 16)), R: int(int16(k))},
	}
}

func (e Edge) String() string { return e.A.String() + "-" + e.B.String() }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
