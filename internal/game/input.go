package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/ecs/debugui"
	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/internal/sim"
	"github.com/plus3/hexroads/roadnet"
	"github.com/plus3/hexroads/scene"
)

// PointerSystem copies the mouse into sim.PointerState. A cursor outside the
// window is reported as absent.
type PointerSystem struct {
	Pointer  ecs.Singleton[sim.PointerState]
	Viewport ecs.Singleton[sim.Viewport]
	Imgui    ecs.Singleton[debugui.ImguiInputState]
}

func (s *PointerSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	vp := s.Viewport.Get()
	if pointer == nil || vp == nil {
		return
	}

	x, y := ebiten.CursorPosition()
	pointer.X, pointer.Y = float64(x), float64(y)
	pointer.Present = x >= 0 && y >= 0 && float64(x) < vp.Width && float64(y) < vp.Height
	pointer.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	pointer.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	pointer.Captured = false
	if state := s.Imgui.Get(); state != nil {
		pointer.Captured = state.WantCaptureMouse
	}
}

// KeySystem handles keyboard shortcuts:
//
//	R      new seed
//	N      toggle perlin/simplex noise
//	M      toggle 2D/3D
//	L      toggle pointy/flat layout
//	G      toggle grid/world noise sampling
//	S      save the current scene (when a store is configured)
type KeySystem struct {
	Settings ecs.Singleton[sim.Settings]
	Imgui    ecs.Singleton[debugui.ImguiInputState]

	Save func()
}

func (s *KeySystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		return
	}
	if state := s.Imgui.Get(); state != nil && state.WantCaptureKeyboard {
		return
	}

	p := &settings.Params
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.Seed++
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		p.Noise = toggle(p.Noise, roadnet.Perlin, roadnet.Simplex)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		p.Mode = toggle(p.Mode, scene.Flat2D, scene.Terrain3D)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		p.Layout = toggle(p.Layout, hexgrid.PointyTop, hexgrid.FlatTop)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		p.Sampling = toggle(p.Sampling, roadnet.GridSpace, roadnet.WorldSpace)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if s.Save != nil {
			frame.Commands.Defer(s.Save)
		}
	}
}

func toggle[T comparable](v, a, b T) T {
	if v == a {
		return b
	}
	return a
}
