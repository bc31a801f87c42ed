// Package scene turns generator parameters into a complete board of tiles and
// roads, and keeps a host's spawned entities in step with those parameters.
package scene

import (
	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/roadnet"
)

// Tile is one hex of the board.
type Tile struct {
	Coord  hexgrid.Axial
	Center hexgrid.Vec3
	Height float64
	Mesh   hexgrid.Mesh3
}

// Segment is a road lifted onto the tops of the tiles it joins.
type Segment struct {
	Road     roadnet.Road
	From, To hexgrid.Vec3
}

// Scene is one generation: every tile in board order plus the selected roads.
type Scene struct {
	Params Params
	Tiles  []Tile
	Roads  []Segment
}

// heightSeedOffset keeps the terrain field independent of the road field.
const heightSeedOffset = 7919

// Build generates the scene for p.
func Build(p Params) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	grid := p.Grid()
	heights := make([]float64, grid.Len())
	if p.Mode == Terrain3D {
		terrain := roadnet.NewField(p.Noise, p.Seed+heightSeedOffset)
		scale := p.NoiseScale
		if scale == 0 {
			scale = roadnet.DefaultScale
		}
		for a := range grid.Coords() {
			o := a.Offset(p.Layout)
			v := terrain.Sample(float64(o.Col)*scale, float64(o.Row)*scale)
			heights[grid.Index(a)] = v * p.HeightScale
		}
	}

	s := &Scene{
		Params: p,
		Tiles:  make([]Tile, 0, grid.Len()),
	}
	for a := range grid.Coords() {
		h := heights[grid.Index(a)]
		s.Tiles = append(s.Tiles, p.NewTile(a, h))
	}

	field := roadnet.NewField(p.Noise, p.Seed)
	roads := roadnet.Plan(grid, field, p.RoadConfig())
	s.Roads = make([]Segment, 0, len(roads))
	for _, r := range roads {
		s.Roads = append(s.Roads, Segment{
			Road: r,
			From: r.From.Lift(heights[grid.Index(r.Edge.A)]),
			To:   r.To.Lift(heights[grid.Index(r.Edge.B)]),
		})
	}
	return s, nil
}

// NewTile builds the tile at a raised to height h.
func (p Params) NewTile(a hexgrid.Axial, h float64) Tile {
	center := hexgrid.ToWorld3(a, p.TileRadius, p.Layout, h)

	var mesh hexgrid.Mesh3
	if p.Mode == Terrain3D {
		mesh = hexgrid.Prism(center, p.TileRadius, p.Layout, 0)
	} else {
		mesh = hexgrid.FanFromCenter(center.XZ(), p.TileRadius, p.Layout).Lift(0)
	}
	return Tile{
		Coord:  a,
		Center: center,
		Height: h,
		Mesh:   mesh,
	}
}

// Bounds returns the box enclosing every tile mesh.
func (s *Scene) Bounds() (lo, hi hexgrid.Vec3) {
	first := true
	for _, t := range s.Tiles {
		for _, v := range t.Mesh.Vertices {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = hexgrid.Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
			hi = hexgrid.Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
		}
	}
	return lo, hi
}
