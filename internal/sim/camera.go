package sim

import (
	"math"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/scene"
)

// BoardArea is the fraction of the window height reserved for the board; the
// sliders live below it.
const BoardArea = 0.65

const cameraMargin = 16

var cos30 = math.Sqrt(3) / 2

// Camera maps world positions to screen pixels. Iso selects an isometric view
// of the XZ plane with Y up; otherwise the board is seen from above.
type Camera struct {
	Iso              bool
	Scale            float64
	OffsetX, OffsetY float64
}

// Flatten projects v before scaling.
func (c Camera) Flatten(v hexgrid.Vec3) (x, y float64) {
	if !c.Iso {
		return v.X, v.Z
	}
	return (v.X - v.Z) * cos30, (v.X+v.Z)/2 - v.Y
}

// Project returns the screen position of v.
func (c Camera) Project(v hexgrid.Vec3) (x, y float64) {
	fx, fy := c.Flatten(v)
	return fx*c.Scale + c.OffsetX, fy*c.Scale + c.OffsetY
}

// Depth orders tiles for painting: smaller values are farther away.
func (c Camera) Depth(v hexgrid.Vec3) float64 {
	if !c.Iso {
		return 0
	}
	return v.X + v.Z
}

// FitCamera centers every tile of tiles inside a w×h area, scaled so the
// board just fits.
func FitCamera(tiles []scene.Tile, iso bool, w, h float64) Camera {
	c := Camera{Iso: iso, Scale: 1}
	loX, loY, hiX, hiY, ok := c.extent(tiles)
	if !ok {
		return c
	}
	areaW := max(w-2*cameraMargin, 1)
	areaH := max(h-2*cameraMargin, 1)
	bw, bh := hiX-loX, hiY-loY
	if bw > 0 && bh > 0 {
		c.Scale = min(areaW/bw, areaH/bh)
	}
	return c.CenterOn(tiles, w, h)
}

// CenterOn keeps the scale and moves the offsets so tiles are centered in a
// w×h area.
func (c Camera) CenterOn(tiles []scene.Tile, w, h float64) Camera {
	loX, loY, hiX, hiY, ok := c.extent(tiles)
	if !ok {
		return c
	}
	c.OffsetX = w/2 - (loX+hiX)/2*c.Scale
	c.OffsetY = h/2 - (loY+hiY)/2*c.Scale
	return c
}

// extent returns the unscaled bounding box of tiles.
func (c Camera) extent(tiles []scene.Tile) (loX, loY, hiX, hiY float64, ok bool) {
	for _, t := range tiles {
		for _, v := range t.Mesh.Vertices {
			x, y := c.Flatten(v)
			if !ok {
				loX, loY, hiX, hiY = x, y, x, y
				ok = true
				continue
			}
			loX, hiX = min(loX, x), max(hiX, x)
			loY, hiY = min(loY, y), max(hiY, y)
		}
	}
	return loX, loY, hiX, hiY, ok
}

// framing is the part of Params that decides the camera scale. Tile radius is
// left out so resizing tiles changes what is drawn.
func framing(p scene.Params) scene.Params {
	p.TileRadius = 0
	p.Density = 0
	return p
}

// CameraSystem keeps the live generation centered in the board area. The
// scale is fitted to the board built at FitRadius and only changes with the
// board's shape, mode or the viewport; a new generation just recenters.
// Run it after the frame that spawned a generation has flushed, typically
// just before drawing.
type CameraSystem struct {
	Tiles    ecs.Query[struct{ *HexTile }]
	Info     ecs.Singleton[GenerationInfo]
	Viewport ecs.Singleton[Viewport]
	Camera   ecs.Singleton[Camera]

	// FitRadius is the tile radius the scale is fitted for. Zero means
	// MaxTileRadius, so the largest tiles still fit.
	FitRadius float64

	fitted     uint64
	framed     scene.Params
	fittedSize Viewport
	scale      float64
	buf        []scene.Tile
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	info, vp, cam := s.Info.Get(), s.Viewport.Get(), s.Camera.Get()
	if info == nil || vp == nil || cam == nil {
		return
	}
	if info.Generation == 0 {
		return
	}
	iso := info.Params.Mode == scene.Terrain3D
	if info.Generation == s.fitted && *vp == s.fittedSize && cam.Iso == iso {
		return
	}

	s.buf = s.buf[:0]
	for item := range s.Tiles.Values() {
		if item.HexTile.Generation == info.Generation {
			s.buf = append(s.buf, item.HexTile.Tile)
		}
	}
	if len(s.buf) == 0 {
		// The new generation lands when this frame's commands flush.
		return
	}

	area := vp.Height * BoardArea
	key := framing(info.Params)
	if s.scale == 0 || key != s.framed || *vp != s.fittedSize {
		s.scale = s.fitScale(info.Params, iso, vp.Width, area)
		s.framed = key
	}
	*cam = Camera{Iso: iso, Scale: s.scale}.CenterOn(s.buf, vp.Width, area)
	s.fitted = info.Generation
	s.fittedSize = *vp
}

func (s *CameraSystem) fitScale(p scene.Params, iso bool, w, h float64) float64 {
	p.TileRadius = s.FitRadius
	if p.TileRadius <= 0 {
		p.TileRadius = MaxTileRadius
	}
	ref, err := scene.Build(p)
	if err != nil {
		return FitCamera(s.buf, iso, w, h).Scale
	}
	return FitCamera(ref.Tiles, iso, w, h).Scale
}
