package scene

import (
	"errors"
	"fmt"

	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/roadnet"
)

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid scene params")

// MaxBoardSide bounds Cols and Rows.
const MaxBoardSide = 64

// Mode selects how tiles are built.
type Mode int

const (
	// Flat2D lays flat hexes on the ground plane.
	Flat2D Mode = iota
	// Terrain3D raises each tile to a noise-driven height.
	Terrain3D
)

func (m Mode) String() string {
	if m == Terrain3D {
		return "3d"
	}
	return "2d"
}

// ParseMode accepts "2d" or "3d".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "2d":
		return Flat2D, nil
	case "3d":
		return Terrain3D, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Params drives generation. Two scenes built from equal Params are identical.
type Params struct {
	Cols, Rows  int
	TileRadius  float64
	Density     float64
	Layout      hexgrid.Layout
	Mode        Mode
	Seed        int64
	Noise       roadnet.NoiseKind
	Sampling    roadnet.Sampling
	NoiseScale  float64
	HeightScale float64
}

// DefaultParams returns a 15×15 pointy-top board at half density.
func DefaultParams() Params {
	return Params{
		Cols:        15,
		Rows:        15,
		TileRadius:  20,
		Density:     0.5,
		Layout:      hexgrid.PointyTop,
		Mode:        Flat2D,
		Seed:        42,
		Noise:       roadnet.Perlin,
		Sampling:    roadnet.GridSpace,
		NoiseScale:  roadnet.DefaultScale,
		HeightScale: 30,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.Cols < 1 || p.Cols > MaxBoardSide:
		return fmt.Errorf("%w: cols %d outside [1, %d]", ErrInvalidParams, p.Cols, MaxBoardSide)
	case p.Rows < 1 || p.Rows > MaxBoardSide:
		return fmt.Errorf("%w: rows %d outside [1, %d]", ErrInvalidParams, p.Rows, MaxBoardSide)
	case !(p.TileRadius > 0):
		return fmt.Errorf("%w: tile radius %g must be positive", ErrInvalidParams, p.TileRadius)
	case !(p.Density >= 0 && p.Density <= 1):
		return fmt.Errorf("%w: density %g outside [0, 1]", ErrInvalidParams, p.Density)
	case p.NoiseScale < 0:
		return fmt.Errorf("%w: noise scale %g is negative", ErrInvalidParams, p.NoiseScale)
	case p.HeightScale < 0:
		return fmt.Errorf("%w: height scale %g is negative", ErrInvalidParams, p.HeightScale)
	}
	return nil
}

// Grid returns the board the params describe.
func (p Params) Grid() hexgrid.Rect {
	return hexgrid.Rect{Cols: p.Cols, Rows: p.Rows, Layout: p.Layout}
}

// RoadConfig returns the road planner settings.
func (p Params) RoadConfig() roadnet.Config {
	return roadnet.Config{
		Density:    p.Density,
		Scale:      p.NoiseScale,
		Sampling:   p.Sampling,
		TileRadius: p.TileRadius,
	}
}
