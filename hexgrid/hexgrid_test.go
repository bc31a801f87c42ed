package hexgrid_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/plus3/hexroads/hexgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestCornersEquidistantAndSixtyDegreesApart(t *testing.T) {
	for _, l := range []hexgrid.Layout{hexgrid.PointyTop, hexgrid.FlatTop} {
		for _, radius := range []float64{0.5, 1, 7.25, 40} {
			for q := -4; q <= 4; q++ {
				for r := -4; r <= 4; r++ {
					center := hexgrid.ToWorld(hexgrid.Axial{Q: q, R: r}, radius, l)
					corners := hexgrid.Corners(center, radius, l)

					for i, c := range corners {
						assert.InDelta(t, radius, c.Dist(center), eps, "%v corner %d", l, i)

						next := corners[(i+1)%6]
						a := c.Sub(center)
						b := next.Sub(center)
						angle := math.Atan2(a.X*b.Y-a.Y*b.X, a.X*b.X+a.Y*b.Y)
						assert.InDelta(t, math.Pi/3, angle, 1e-9)
					}
				}
			}
		}
	}
}

func TestCornerPhase(t *testing.T) {
	pointy := hexgrid.Corners(hexgrid.Vec2{}, 1, hexgrid.PointyTop)
	assert.InDelta(t, math.Sqrt(3)/2, pointy[0].X, eps)
	assert.InDelta(t, -0.5, pointy[0].Y, eps)

	flat := hexgrid.Corners(hexgrid.Vec2{}, 1, hexgrid.FlatTop)
	assert.InDelta(t, 1, flat[0].X, eps)
	assert.InDelta(t, 0, flat[0].Y, eps)
}

func TestToWorldOddRowShift(t *testing.T) {
	const radius = 10.0
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			a := hexgrid.Offset{Col: col, Row: row}.Axial(hexgrid.PointyTop)
			p := hexgrid.ToWorld(a, radius, hexgrid.PointyTop)

			wantX := radius * math.Sqrt(3) * (float64(col) + 0.5*float64(row&1))
			wantY := radius * 1.5 * float64(row)
			assert.InDelta(t, wantX, p.X, eps, "col %d row %d", col, row)
			assert.InDelta(t, wantY, p.Y, eps, "col %d row %d", col, row)
		}
	}
}

func TestNeighborsAreOneStepApart(t *testing.T) {
	for _, l := range []hexgrid.Layout{hexgrid.PointyTop, hexgrid.FlatTop} {
		origin := hexgrid.Axial{Q: 2, R: -3}
		center := hexgrid.ToWorld(origin, 3, l)
		for _, n := range hexgrid.Neighbors(origin) {
			assert.Equal(t, 1, origin.Distance(n))
			assert.InDelta(t, 3*math.Sqrt(3), hexgrid.ToWorld(n, 3, l).Dist(center), eps)
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	for _, l := range []hexgrid.Layout{hexgrid.PointyTop, hexgrid.FlatTop} {
		for col := -5; col <= 5; col++ {
			for row := -5; row <= 5; row++ {
				o := hexgrid.Offset{Col: col, Row: row}
				assert.Equal(t, o, o.Axial(l).Offset(l), "%v %v", l, o)
			}
		}
	}
}

func TestFromWorldInvertsToWorld(t *testing.T) {
	for _, l := range []hexgrid.Layout{hexgrid.PointyTop, hexgrid.FlatTop} {
		for q := -3; q <= 3; q++ {
			for r := -3; r <= 3; r++ {
				a := hexgrid.Axial{Q: q, R: r}
				p := hexgrid.ToWorld(a, 2.5, l)
				assert.Equal(t, a, hexgrid.FromWorld(p.Add(hexgrid.Vec2{X: 0.3, Y: -0.2}), 2.5, l))
			}
		}
	}
}

func TestEdgeCanonicalization(t *testing.T) {
	a := hexgrid.Axial{Q: 3, R: -1}
	for _, n := range hexgrid.Neighbors(a) {
		forward := hexgrid.NewEdge(a, n)
		backward := hexgrid.NewEdge(n, a)
		assert.Equal(t, forward, backward)
		assert.Equal(t, forward.Key(), backward.Key())
		assert.Equal(t, forward.Key(), hexgrid.Edge{A: n, B: a}.Key(), "Key canonicalizes raw edges")
		assert.Equal(t, forward, hexgrid.EdgeFromKey(forward.Key()))
	}

	assert.NotEqual(t,
		hexgrid.NewEdge(hexgrid.Axial{Q: 0, R: 0}, hexgrid.Axial{Q: 1, R: 0}).Key(),
		hexgrid.NewEdge(hexgrid.Axial{Q: 0, R: 0}, hexgrid.Axial{Q: 0, R: 1}).Key())
}

func TestMeshes(t *testing.T) {
	center := hexgrid.Vec2{X: 5, Y: 5}

	fan := hexgrid.FanFromCenter(center, 2, hexgrid.PointyTop)
	require.Len(t, fan.Vertices, 7)
	assert.Equal(t, 6, fan.Primitives())
	assert.Equal(t, center, fan.Vertices[0])
	for i := 0; i < len(fan.Indices); i += 3 {
		assert.Equal(t, uint16(0), fan.Indices[i], "every triangle shares the center")
	}

	first := hexgrid.FanFromFirst(center, 2, hexgrid.PointyTop)
	assert.Len(t, first.Vertices, 6)
	assert.Equal(t, 4, first.Primitives())

	outline := hexgrid.Outline(center, 2, hexgrid.FlatTop)
	assert.Equal(t, hexgrid.Lines, outline.Mode)
	assert.Equal(t, 6, outline.Primitives())
	assert.Equal(t, []uint16{5, 0}, outline.Indices[10:12], "loop is closed")

	prism := hexgrid.Prism(hexgrid.Vec3{X: 1, Y: 3, Z: 1}, 1, hexgrid.PointyTop, 0)
	assert.Len(t, prism.Vertices, 7+24)
	assert.Equal(t, 6+12, prism.Primitives())

	flatPrism := hexgrid.Prism(hexgrid.Vec3{Y: 0}, 1, hexgrid.PointyTop, 0)
	assert.Equal(t, 6, flatPrism.Primitives(), "no sides when the top sits on the base")
}

func TestMeshAreaMatchesHexArea(t *testing.T) {
	area := func(m hexgrid.Mesh2) float64 {
		total := 0.0
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
			total += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
		}
		return total
	}

	want := 3 * math.Sqrt(3) / 2 * 4
	assert.InDelta(t, want, area(hexgrid.FanFromCenter(hexgrid.Vec2{}, 2, hexgrid.FlatTop)), 1e-9)
	assert.InDelta(t, want, area(hexgrid.FanFromFirst(hexgrid.Vec2{}, 2, hexgrid.FlatTop)), 1e-9)
}

func TestRect(t *testing.T) {
	g := hexgrid.Rect{Cols: 4, Rows: 3, Layout: hexgrid.PointyTop}
	assert.Equal(t, 12, g.Len())

	i := 0
	for a := range g.Coords() {
		assert.True(t, g.Contains(a))
		assert.Equal(t, i, g.Index(a))
		i++
	}
	assert.Equal(t, 12, i)

	assert.False(t, g.Contains(hexgrid.Offset{Col: 4, Row: 0}.Axial(hexgrid.PointyTop)))
	assert.False(t, g.Contains(hexgrid.Offset{Col: 0, Row: -1}.Axial(hexgrid.PointyTop)))
	assert.Equal(t, -1, g.Index(hexgrid.Axial{Q: 100, R: 100}))
	assert.Zero(t, hexgrid.Rect{}.Len())

	lo, hi := g.Bounds(1)
	assert.Less(t, lo.X, hi.X)
	assert.Less(t, lo.Y, hi.Y)
}

func TestParseLayout(t *testing.T) {
	for _, l := range []hexgrid.Layout{hexgrid.PointyTop, hexgrid.FlatTop} {
		parsed, err := hexgrid.ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	_, err := hexgrid.ParseLayout("round")
	assert.Error(t, err)
}

func ExampleToWorld() {
	for _, o := range []hexgrid.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 0, Row: 1}} {
		p := hexgrid.ToWorld(o.Axial(hexgrid.PointyTop), 10, hexgrid.PointyTop)
		fmt.Printf("%v -> (%.2f, %.2f)\n", o, p.X, p.Y)
	}
	// Output:
	// {0 0} -> (0.00, 0.00)
	// {1 0} -> (17.32, 0.00)
	// {0 1} -> (8.66, 15.00)
}
