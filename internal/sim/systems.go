package sim

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/scene"
	"github.com/plus3/hexroads/slider"
)

// SliderSystem lays sliders out against the viewport, feeds them pointer input
// and writes changed values into Settings. Idle sliders follow Settings so
// edits made elsewhere show up on the track.
type SliderSystem struct {
	Sliders  ecs.Query[struct{ *SliderWidget }]
	Pointer  ecs.Singleton[PointerState]
	Viewport ecs.Singleton[Viewport]
	Settings ecs.Singleton[Settings]
}

func (s *SliderSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	viewport := s.Viewport.Get()
	pointer := s.Pointer.Get()
	if settings == nil || viewport == nil {
		return
	}

	var input slider.Pointer
	if pointer != nil {
		input = pointer.Pointer
		if pointer.Captured {
			input = slider.Pointer{JustReleased: pointer.JustReleased}
		}
	}

	for item := range s.Sliders.Values() {
		w := item.SliderWidget
		w.Slider.Resize(viewport.Width, viewport.Height)
		if w.Slider.State() == slider.Idle {
			w.Slider.SetValue(w.Param.Read(settings.Params))
		}
		if w.Slider.Update(input) {
			w.Param.Apply(&settings.Params, w.Slider.Value())
		}
	}
}

// RegenerateSystem keeps exactly one generation of tiles and roads alive. When
// Settings change it queues deletion of every current tile and road and
// spawns the new generation; both land when the frame's commands flush.
type RegenerateSystem struct {
	Tiles    ecs.Query[struct{ ecs.EntityId; *HexTile }]
	Roads    ecs.Query[struct{ ecs.EntityId; *RoadSegment }]
	Settings ecs.Singleton[Settings]
	Info     ecs.Singleton[GenerationInfo]

	Logger *slog.Logger

	regen   scene.Regenerator
	lastErr string
}

func (s *RegenerateSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		return
	}

	host := &commandHost{
		commands:   frame.Commands,
		tiles:      s.Tiles.Entities(),
		roads:      s.Roads.Entities(),
		generation: s.regen.Generation() + 1,
	}
	start := time.Now()
	rebuilt, err := s.regen.Sync(settings.Params, host)
	elapsed := time.Since(start)

	info := s.Info.Get()
	if err != nil {
		msg := err.Error()
		if msg != s.lastErr {
			s.logger().Warn("scene params rejected", "error", err)
			s.lastErr = msg
		}
		if info != nil {
			info.LastError = msg
		}
		return
	}
	s.lastErr = ""
	if info != nil {
		info.LastError = ""
	}
	if !rebuilt {
		return
	}

	current := s.regen.Current()
	s.logger().Debug("scene regenerated",
		"generation", s.regen.Generation(),
		"tiles", len(current.Tiles),
		"roads", len(current.Roads),
		"elapsed", elapsed,
	)
	if info != nil {
		*info = GenerationInfo{
			Generation: s.regen.Generation(),
			Params:     current.Params,
			Tiles:      len(current.Tiles),
			Roads:      len(current.Roads),
			BuildTime:  elapsed,
		}
	}
}

// Scene returns the generation currently spawned, or nil.
func (s *RegenerateSystem) Scene() *scene.Scene {
	return s.regen.Current()
}

// Regenerate forces a rebuild on the next frame.
func (s *RegenerateSystem) Regenerate() {
	s.regen.Invalidate()
}

// commandHost spawns and despawns scene entities through a frame's commands.
type commandHost struct {
	commands   *ecs.Commands
	tiles      iter.Seq[ecs.EntityId]
	roads      iter.Seq[ecs.EntityId]
	generation uint64
}

func (h *commandHost) DespawnAll() {
	h.commands.DeleteAll(h.tiles)
	h.commands.DeleteAll(h.roads)
}

func (h *commandHost) SpawnTile(t scene.Tile) {
	h.commands.Spawn(HexTile{Tile: t, Generation: h.generation})
}

func (h *commandHost) SpawnRoad(seg scene.Segment) {
	h.commands.Spawn(RoadSegment{Segment: seg, Generation: h.generation})
}

func (s *RegenerateSystem) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

const (
	// labelGap is the space between a caption and the top of its handle.
	labelGap     = 24
	statusMargin = 8
)

// LabelSystem keeps slider captions and the status line current.
type LabelSystem struct {
	Sliders ecs.Query[struct {
		*SliderWidget
		*Label
	}]
	Status ecs.Query[struct {
		*StatusLine
		*Label
	}]
	Info     ecs.Singleton[GenerationInfo]
	Viewport ecs.Singleton[Viewport]
}

func (s *LabelSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Sliders.Values() {
		handle := item.SliderWidget.Slider.Handle()
		item.Label.Text = item.SliderWidget.Slider.Label()
		item.Label.X = item.SliderWidget.Slider.Track().X
		item.Label.Y = handle.Y - labelGap
	}

	info := s.Info.Get()
	if info == nil {
		return
	}
	text := StatusText(info)
	for item := range s.Status.Values() {
		item.Label.Text = text
		item.Label.X = statusMargin
		item.Label.Y = statusMargin
		if vp := s.Viewport.Get(); vp != nil && vp.Height > 0 {
			item.Label.Y = vp.Height - labelGap
		}
	}
}

// StatusText summarizes a generation in one line.
func StatusText(info *GenerationInfo) string {
	if info.LastError != "" {
		return "error: " + info.LastError
	}
	if info.Generation == 0 {
		return "generating..."
	}
	p := info.Params
	return fmt.Sprintf("generation %d: %dx%d %s, %d tiles, %d roads, seed %d, %s noise",
		info.Generation, p.Cols, p.Rows, p.Mode, info.Tiles, info.Roads, p.Seed, p.Noise)
}
