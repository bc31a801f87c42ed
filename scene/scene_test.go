package scene_test

import (
	"fmt"
	"testing"

	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/roadnet"
	"github.com/plus3/hexroads/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, scene.DefaultParams().Validate())

	cases := map[string]func(*scene.Params){
		"zero cols":       func(p *scene.Params) { p.Cols = 0 },
		"too many rows":   func(p *scene.Params) { p.Rows = scene.MaxBoardSide + 1 },
		"zero radius":     func(p *scene.Params) { p.TileRadius = 0 },
		"density above 1": func(p *scene.Params) { p.Density = 1.01 },
		"negative density": func(p *scene.Params) {
			p.Density = -0.1
		},
		"negative height": func(p *scene.Params) { p.HeightScale = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := scene.DefaultParams()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), scene.ErrInvalidParams)

			_, err := scene.Build(p)
			assert.ErrorIs(t, err, scene.ErrInvalidParams)
		})
	}
}

func TestBuildFlat(t *testing.T) {
	p := scene.DefaultParams()
	p.Cols, p.Rows = 6, 4

	s, err := scene.Build(p)
	require.NoError(t, err)
	require.Len(t, s.Tiles, 24)

	grid := p.Grid()
	for i, tile := range s.Tiles {
		assert.Equal(t, i, grid.Index(tile.Coord), "tiles in board order")
		assert.Equal(t, 0.0, tile.Height)
		assert.Len(t, tile.Mesh.Vertices, 7)
		assert.Equal(t, 6, tile.Mesh.Primitives())
		for _, v := range tile.Mesh.Vertices {
			assert.Equal(t, 0.0, v.Y)
		}
		want := hexgrid.ToWorld(tile.Coord, p.TileRadius, p.Layout)
		assert.InDelta(t, want.X, tile.Center.X, 1e-9)
		assert.InDelta(t, want.Y, tile.Center.Z, 1e-9)
	}
}

func TestBuildRoadsMatchPlanner(t *testing.T) {
	p := scene.DefaultParams()
	p.Density = 0.6

	s, err := scene.Build(p)
	require.NoError(t, err)

	roads := roadnet.Plan(p.Grid(), roadnet.NewField(p.Noise, p.Seed), p.RoadConfig())
	require.Len(t, s.Roads, len(roads))
	for i, seg := range s.Roads {
		assert.Equal(t, roads[i].Edge, seg.Road.Edge)
		assert.Equal(t, 0.0, seg.From.Y)
		assert.InDelta(t, roads[i].From.X, seg.From.X, 1e-9)
		assert.InDelta(t, roads[i].To.Y, seg.To.Z, 1e-9)
	}
}

func TestBuildTerrain(t *testing.T) {
	p := scene.DefaultParams()
	p.Mode = scene.Terrain3D
	p.Density = 0.7

	s, err := scene.Build(p)
	require.NoError(t, err)

	heights := make(map[hexgrid.Axial]float64, len(s.Tiles))
	varied := false
	for _, tile := range s.Tiles {
		assert.GreaterOrEqual(t, tile.Height, 0.0)
		assert.LessOrEqual(t, tile.Height, p.HeightScale)
		assert.Equal(t, tile.Height, tile.Center.Y)
		if tile.Height != s.Tiles[0].Height {
			varied = true
		}
		heights[tile.Coord] = tile.Height
	}
	assert.True(t, varied, "terrain should not be flat")

	for _, seg := range s.Roads {
		assert.Equal(t, heights[seg.Road.Edge.A], seg.From.Y)
		assert.Equal(t, heights[seg.Road.Edge.B], seg.To.Y)
	}
}

func TestTerrainRoadsMatchFlatRoads(t *testing.T) {
	p := scene.DefaultParams()
	flat, err := scene.Build(p)
	require.NoError(t, err)

	p.Mode = scene.Terrain3D
	terrain, err := scene.Build(p)
	require.NoError(t, err)

	require.Len(t, terrain.Roads, len(flat.Roads))
	for i := range flat.Roads {
		assert.Equal(t, flat.Roads[i].Road.Edge, terrain.Roads[i].Road.Edge)
	}
}

func TestBuildDeterministic(t *testing.T) {
	p := scene.DefaultParams()
	p.Mode = scene.Terrain3D

	a, err := scene.Build(p)
	require.NoError(t, err)
	b, err := scene.Build(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBounds(t *testing.T) {
	p := scene.DefaultParams()
	p.Cols, p.Rows = 3, 3
	s, err := scene.Build(p)
	require.NoError(t, err)

	lo, hi := s.Bounds()
	glo, ghi := p.Grid().Bounds(p.TileRadius)
	assert.InDelta(t, glo.X, lo.X, 1e-9)
	assert.InDelta(t, glo.Y, lo.Z, 1e-9)
	assert.InDelta(t, ghi.X, hi.X, 1e-9)
	assert.InDelta(t, ghi.Y, hi.Z, 1e-9)
}

func TestParseMode(t *testing.T) {
	m, err := scene.ParseMode("3d")
	require.NoError(t, err)
	assert.Equal(t, scene.Terrain3D, m)
	assert.Equal(t, "2d", scene.Flat2D.String())

	_, err = scene.ParseMode("4d")
	assert.Error(t, err)
}

func ExampleBuild() {
	p := scene.DefaultParams()
	p.Cols, p.Rows = 4, 3
	p.Density = 0

	s, err := scene.Build(p)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(s.Tiles), "tiles,", len(s.Roads), "roads")
	// Output: 12 tiles, 0 roads
}
