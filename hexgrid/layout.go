// Package hexgrid maps hexagonal boards to world space and builds tile meshes.
//
// Boards are addressed in axial coordinates. Rectangular boards are laid out
// through offset coordinates, which for pointy-top tiles gives the familiar
// odd-row horizontal shift with rows spaced 1.5 radii apart.
package hexgrid

import (
	"fmt"
	"math"
)

// Layout selects the tile orientation.
type Layout int

const (
	PointyTop Layout = iota
	FlatTop
)

var sqrt3 = math.Sqrt(3)

func (l Layout) String() string {
	switch l {
	case PointyTop:
		return "pointy"
	case FlatTop:
		return "flat"
	}
	return "unknown"
}

// ParseLayout accepts "pointy" or "flat".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "pointy":
		return PointyTop, nil
	case "flat":
		return FlatTop, nil
	}
	return 0, fmt.Errorf("unknown hex layout %q", s)
}

// phase is the angle of corner 0 in degrees.
func (l Layout) phase() float64 {
	if l == FlatTop {
		return 0
	}
	return -30
}

// ToWorld returns the center of hex a for tiles of circumradius radius.
func ToWorld(a Axial, radius float64, l Layout) Vec2 {
	q, r := float64(a.Q), float64(a.R)
	if l == FlatTop {
		return Vec2{
			X: radius * 1.5 * q,
			Y: radius * sqrt3 * (r + q/2),
		}
	}
	return Vec2{
		X: radius * sqrt3 * (q + r/2),
		Y: radius * 1.5 * r,
	}
}

// ToWorld3 places the center of hex a on the XZ plane at the given height.
func ToWorld3(a Axial, radius float64, l Layout, height float64) Vec3 {
	return ToWorld(a, radius, l).Lift(height)
}

// FromWorld returns the hex containing point p.
func FromWorld(p Vec2, radius float64, l Layout) Axial {
	var q, r float64
	if l == FlatTop {
		q = (2.0 / 3.0 * p.X) / radius
		r = (-1.0/3.0*p.X + sqrt3/3*p.Y) / radius
	} else {
		q = (sqrt3/3*p.X - 1.0/3.0*p.Y) / radius
		r = (2.0 / 3.0 * p.Y) / radius
	}
	return roundAxial(q, r)
}

func roundAxial(q, r float64) Axial {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Axial{Q: int(rq), R: int(rr)}
}

// Corner returns corner i (0..5) of the hex centered at center.
func Corner(center Vec2, radius float64, l Layout, i int) Vec2 {
	angle := (60*float64(i) + l.phase()) * math.Pi / 180
	return Vec2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// Corners returns the six corners, 60° apart, all at distance radius.
func Corners(center Vec2, radius float64, l Layout) [6]Vec2 {
	var out [6]Vec2
	for i := range out {
		out[i] = Corner(center, radius, l, i)
	}
	return out
}

// Corners3 returns the six corners of a tile lying on the XZ plane at the
// center's height.
func Corners3(center Vec3, radius float64, l Layout) [6]Vec3 {
	var out [6]Vec3
	for i, c := range Corners(center.XZ(), radius, l) {
		out[i] = c.Lift(center.Y)
	}
	return out
}
