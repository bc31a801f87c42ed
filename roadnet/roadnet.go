// Package roadnet decides which adjacent hex pairs of a board are joined by a
// road. Every undirected adjacency is considered once; a coherent noise field
// sampled near the pair gates whether it becomes a road.
package roadnet

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/hexroads/hexgrid"
)

// Sampling selects the noise domain.
type Sampling int

const (
	// GridSpace samples at the pair's board-coordinate midpoint. Placement is
	// independent of tile size.
	GridSpace Sampling = iota
	// WorldSpace samples at the pair's world-space midpoint, so resizing tiles
	// reshuffles the network.
	WorldSpace
)

func (s Sampling) String() string {
	if s == WorldSpace {
		return "world"
	}
	return "grid"
}

// ParseSampling accepts "grid" or "world".
func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "grid":
		return GridSpace, nil
	case "world":
		return WorldSpace, nil
	}
	return 0, fmt.Errorf("unknown sampling domain %q", s)
}

// DefaultScale is the grid-to-noise scale factor.
const DefaultScale = 0.35

// Config controls road selection.
type Config struct {
	Density    float64
	Scale      float64
	Sampling   Sampling
	TileRadius float64
}

// Threshold maps a density in [0, 1] to the noise cutoff. Values outside the
// range are clamped.
func Threshold(density float64) float64 {
	return 1 - clamp01(density)
}

// Road is a selected adjacency with the centers it joins.
type Road struct {
	Edge     hexgrid.Edge
	From, To hexgrid.Vec2
	Value    float64
}

// Midpoint returns the point halfway along the road.
func (r Road) Midpoint() hexgrid.Vec2 {
	return r.From.Lerp(r.To, 0.5)
}

// Length returns the center-to-center distance.
func (r Road) Length() float64 {
	return r.From.Dist(r.To)
}

// Quad returns the corners of a strip of the given width covering the road,
// in winding order.
func (r Road) Quad(width float64) [4]hexgrid.Vec2 {
	side := r.To.Sub(r.From).Norm().Perp().Scale(width / 2)
	return [4]hexgrid.Vec2{
		r.From.Add(side),
		r.To.Add(side),
		r.To.Sub(side),
		r.From.Sub(side),
	}
}

// eachCandidate visits every undirected adjacency of the board once, in board
// order and then Directions order.
func eachCandidate(grid hexgrid.Rect, fn func(hexgrid.Edge)) {
	seen := intmap.New[uint64, struct{}](grid.Len() * 3)
	for a := range grid.Coords() {
		for _, b := range hexgrid.Neighbors(a) {
			if !grid.Contains(b) {
				continue
			}
			edge := hexgrid.NewEdge(a, b)
			key := edge.Key()
			if _, ok := seen.Get(key); ok {
				continue
			}
			seen.Put(key, struct{}{})
			fn(edge)
		}
	}
}

// Candidates returns every undirected adjacency of the board exactly once.
func Candidates(grid hexgrid.Rect) []hexgrid.Edge {
	var edges []hexgrid.Edge
	eachCandidate(grid, func(e hexgrid.Edge) {
		edges = append(edges, e)
	})
	return edges
}

// SamplePoint returns where the field is sampled for edge.
func (c Config) SamplePoint(edge hexgrid.Edge, layout hexgrid.Layout) hexgrid.Vec2 {
	scale := c.Scale
	if scale == 0 {
		scale = DefaultScale
	}

	if c.Sampling == WorldSpace {
		a := hexgrid.ToWorld(edge.A, c.TileRadius, layout)
		b := hexgrid.ToWorld(edge.B, c.TileRadius, layout)
		return a.Lerp(b, 0.5).Scale(scale)
	}

	a, b := edge.A.Offset(layout), edge.B.Offset(layout)
	return hexgrid.Vec2{
		X: float64(a.Col+b.Col) / 2 * scale,
		Y: float64(a.Row+b.Row) / 2 * scale,
	}
}

// Plan selects the roads of the board: an adjacency becomes a road when the
// field value at its sample point exceeds Threshold(cfg.Density). The result
// is deterministic for a fixed field and config.
func Plan(grid hexgrid.Rect, field Field, cfg Config) []Road {
	threshold := Threshold(cfg.Density)

	var roads []Road
	eachCandidate(grid, func(e hexgrid.Edge) {
		p := cfg.SamplePoint(e, grid.Layout)
		value := field.Sample(p.X, p.Y)
		if value <= threshold {
			return
		}
		roads = append(roads, Road{
			Edge:  e,
			From:  hexgrid.ToWorld(e.A, cfg.TileRadius, grid.Layout),
			To:    hexgrid.ToWorld(e.B, cfg.TileRadius, grid.Layout),
			Value: value,
		})
	})
	return roads
}
