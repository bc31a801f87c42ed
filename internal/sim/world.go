package sim

import (
	"log/slog"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/scene"
	"github.com/plus3/hexroads/slider"
)

// SliderSpec describes one slider of the control strip.
type SliderSpec struct {
	Param    Param
	Min, Max float64
	Step     float64
	Format   string
}

// MaxTileRadius is the top of the size slider.
const MaxTileRadius = 60

// DefaultSliders are the size and density controls, stacked near the bottom
// of the window.
func DefaultSliders() []SliderSpec {
	return []SliderSpec{
		{Param: ParamTileRadius, Min: 5, Max: MaxTileRadius, Format: "%s: %.0f"},
		{Param: ParamDensity, Min: 0, Max: 1, Format: "%s: %.2f"},
	}
}

// TerrainSliders adds a height control to the defaults.
func TerrainSliders() []SliderSpec {
	return append(DefaultSliders(),
		SliderSpec{Param: ParamHeightScale, Min: 0, Max: 120, Format: "%s: %.0f"},
	)
}

// sliderTop is where the first slider sits; each next one goes sliderPitch
// further down.
const (
	sliderTop   = 0.70
	sliderPitch = 0.09
)

// Install adds the resources and widget entities the systems expect.
func Install(storage *ecs.Storage, params scene.Params, width, height float64, sliders []SliderSpec) {
	ecs.NewSingleton(storage, Settings{Params: params})
	ecs.NewSingleton(storage, Viewport{Width: width, Height: height})
	ecs.NewSingleton(storage, PointerState{})
	ecs.NewSingleton(storage, GenerationInfo{})
	ecs.NewSingleton(storage, Camera{Scale: 1})

	for i, spec := range sliders {
		layout := slider.DefaultLayout().At(sliderTop + float64(i)*sliderPitch)
		s := slider.New(spec.Param.String(), spec.Min, spec.Max, spec.Param.Read(params), layout)
		s.Step = spec.Step
		if spec.Format != "" {
			s.Format = spec.Format
		}
		s.Resize(width, height)
		storage.Spawn(SliderWidget{Slider: s, Param: spec.Param}, Label{})
	}
	storage.Spawn(StatusLine{}, Label{})
}

// RegisterSystems adds the simulation systems in frame order and returns the
// regeneration system so callers can inspect the live scene.
func RegisterSystems(scheduler *ecs.Scheduler, logger *slog.Logger) *RegenerateSystem {
	regen := &RegenerateSystem{Logger: logger}
	scheduler.Register(&SliderSystem{})
	scheduler.Register(regen)
	scheduler.Register(&LabelSystem{})
	return regen
}
