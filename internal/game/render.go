package game

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/internal/sim"
	"github.com/plus3/hexroads/scene"
	"github.com/plus3/hexroads/slider"
)

var (
	background  = color.RGBA{245, 245, 240, 255}
	tileLow     = color.RGBA{150, 200, 130, 255}
	tileHigh    = color.RGBA{215, 200, 150, 255}
	tileEdge    = color.RGBA{90, 120, 80, 255}
	roadColor   = color.RGBA{120, 85, 60, 255}
	trackColor  = color.RGBA{190, 190, 190, 255}
	handleIdle  = color.RGBA{80, 80, 90, 255}
	handleDrag  = color.RGBA{60, 110, 200, 255}
	labelColor  = color.RGBA{30, 30, 30, 255}
	sideShading = float32(0.7)
)

var whiteImage = ebiten.NewImage(3, 3)

// whiteSubImage avoids sampling the image edge when drawing solid triangles.
var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

func init() {
	whiteImage.Fill(color.White)
}

// prismTopVertices is how many leading vertices of a tile mesh form its top.
const prismTopVertices = 7

// maxBatchVertices keeps a DrawTriangles batch addressable by uint16 indices.
const maxBatchVertices = 1 << 15

// RenderSystem paints tiles, roads, sliders and labels. It runs from
// ebiten's Draw with screen set.
type RenderSystem struct {
	Tiles   ecs.Query[struct{ *sim.HexTile }]
	Roads   ecs.Query[struct{ *sim.RoadSegment }]
	Sliders ecs.Query[struct{ *sim.SliderWidget }]
	Labels  ecs.Query[struct{ *sim.Label }]
	Info    ecs.Singleton[sim.GenerationInfo]
	Camera  ecs.Singleton[sim.Camera]

	Font *text.GoTextFace

	screen   *ebiten.Image
	order    []*sim.HexTile
	vertices []ebiten.Vertex
	indices  []uint16
}

func (r *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if r.screen == nil {
		return
	}
	r.screen.Fill(background)

	cam := r.Camera.Get()
	info := r.Info.Get()
	if cam != nil && info != nil && info.Generation > 0 {
		r.drawTiles(*cam, info.Params)
		r.drawRoads(*cam, info.Params)
	}
	r.drawSliders()
	r.drawLabels()
}

func (r *RenderSystem) drawTiles(cam sim.Camera, p scene.Params) {
	r.order = r.order[:0]
	for item := range r.Tiles.Values() {
		r.order = append(r.order, item.HexTile)
	}
	slices.SortStableFunc(r.order, func(a, b *sim.HexTile) int {
		return cmp.Compare(cam.Depth(a.Tile.Center), cam.Depth(b.Tile.Center))
	})

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range r.order {
		mesh := t.Tile.Mesh
		if len(r.vertices)+len(mesh.Vertices) > maxBatchVertices {
			r.flush()
		}

		top := tileColor(t.Tile.Height, p.HeightScale)
		base := uint16(len(r.vertices))
		for i, v := range mesh.Vertices {
			x, y := cam.Project(v)
			shade := float32(1)
			if i >= prismTopVertices {
				shade = sideShading
			}
			r.vertices = append(r.vertices, vertex(x, y, top, shade))
		}
		for _, idx := range mesh.Indices {
			r.indices = append(r.indices, base+idx)
		}
	}
	r.flush()

	// Top outlines, drawn over the fills so neighbors stay distinguishable.
	width := float32(max(cam.Scale, 1))
	for _, t := range r.order {
		corners := hexgrid.Corners3(t.Tile.Center, p.TileRadius, p.Layout)
		for i := range corners {
			x0, y0 := cam.Project(corners[i])
			x1, y1 := cam.Project(corners[(i+1)%6])
			vector.StrokeLine(r.screen, float32(x0), float32(y0), float32(x1), float32(y1), width, tileEdge, true)
		}
	}
}

func (r *RenderSystem) flush() {
	if len(r.indices) > 0 {
		r.screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
			AntiAlias: true,
		})
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

func (r *RenderSystem) drawRoads(cam sim.Camera, p scene.Params) {
	width := float32(p.TileRadius * 0.25 * cam.Scale)
	for item := range r.Roads.Values() {
		seg := item.RoadSegment.Segment
		x0, y0 := cam.Project(seg.From)
		x1, y1 := cam.Project(seg.To)
		vector.StrokeLine(r.screen, float32(x0), float32(y0), float32(x1), float32(y1), width, roadColor, true)
	}
}

func (r *RenderSystem) drawSliders() {
	for item := range r.Sliders.Values() {
		s := &item.SliderWidget.Slider
		track := s.Track()
		vector.DrawFilledRect(r.screen, float32(track.X), float32(track.Y), float32(track.W), float32(track.H), trackColor, false)

		handle := s.Handle()
		c := handleIdle
		if s.State() == slider.Dragging {
			c = handleDrag
		}
		vector.DrawFilledRect(r.screen, float32(handle.X), float32(handle.Y), float32(handle.W), float32(handle.H), c, false)
	}
}

func (r *RenderSystem) drawLabels() {
	for item := range r.Labels.Values() {
		label := item.Label
		if label.Text == "" {
			continue
		}
		if r.Font == nil {
			ebitenutil.DebugPrintAt(r.screen, label.Text, int(label.X), int(label.Y))
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(label.X, label.Y)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(r.screen, label.Text, r.Font, op)
	}
}

// tileColor blends from the low to the high color by height.
func tileColor(height, scale float64) color.RGBA {
	t := 0.0
	if scale > 0 {
		t = min(max(height/scale, 0), 1)
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return color.RGBA{
		R: lerp(tileLow.R, tileHigh.R),
		G: lerp(tileLow.G, tileHigh.G),
		B: lerp(tileLow.B, tileHigh.B),
		A: 255,
	}
}

func vertex(x, y float64, c color.RGBA, shade float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255 * shade,
		ColorG: float32(c.G) / 255 * shade,
		ColorB: float32(c.B) / 255 * shade,
		ColorA: 1,
	}
}
