// Package sim holds the engine-side half of the hex road demo: the components,
// resources and systems that turn pointer input into generator settings and
// settings into tile and road entities. Nothing here touches the window.
package sim

import (
	"math"
	"time"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/scene"
	"github.com/plus3/hexroads/slider"
)

// HexTile is a spawned board tile.
type HexTile struct {
	Tile       scene.Tile
	Generation uint64
}

// RoadSegment is a spawned road.
type RoadSegment struct {
	Segment    scene.Segment
	Generation uint64
}

// Param names the Settings field a slider drives.
type Param int

const (
	ParamTileRadius Param = iota
	ParamDensity
	ParamCols
	ParamRows
	ParamHeightScale
)

func (p Param) String() string {
	switch p {
	case ParamTileRadius:
		return "size"
	case ParamDensity:
		return "density"
	case ParamCols:
		return "cols"
	case ParamRows:
		return "rows"
	case ParamHeightScale:
		return "height"
	}
	return "unknown"
}

// Read returns the current value of the field p drives.
func (p Param) Read(params scene.Params) float64 {
	switch p {
	case ParamTileRadius:
		return params.TileRadius
	case ParamDensity:
		return params.Density
	case ParamCols:
		return float64(params.Cols)
	case ParamRows:
		return float64(params.Rows)
	case ParamHeightScale:
		return params.HeightScale
	}
	return 0
}

// Apply writes v into the field p drives. Board sides are rounded.
func (p Param) Apply(params *scene.Params, v float64) {
	switch p {
	case ParamTileRadius:
		params.TileRadius = v
	case ParamDensity:
		params.Density = v
	case ParamCols:
		params.Cols = int(math.Round(v))
	case ParamRows:
		params.Rows = int(math.Round(v))
	case ParamHeightScale:
		params.HeightScale = v
	}
}

// SliderWidget binds an on-screen slider to a generator parameter.
type SliderWidget struct {
	Slider slider.Slider
	Param  Param
}

// Label is screen-space text. Y is the top of the text.
type Label struct {
	Text string
	X, Y float64
}

// StatusLine marks the label that reports the current generation.
type StatusLine struct{}

// Settings is the generator configuration every system reads.
type Settings struct {
	Params scene.Params
}

// PointerState is this frame's mouse input. Captured is set when the debug UI
// owns the mouse.
type PointerState struct {
	slider.Pointer
	Captured bool
}

// Viewport is the window size in pixels.
type Viewport struct {
	Width, Height float64
}

// GenerationInfo describes the scene currently spawned.
type GenerationInfo struct {
	Generation uint64
	Params     scene.Params
	Tiles      int
	Roads      int
	BuildTime  time.Duration
	LastError  string
}

// RegisterComponents registers every component type this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[HexTile](registry)
	ecs.RegisterComponent[RoadSegment](registry)
	ecs.RegisterComponent[SliderWidget](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[StatusLine](registry)
}
