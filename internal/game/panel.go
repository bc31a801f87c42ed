package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/ecs/debugui"
	"github.com/plus3/hexroads/internal/sim"
	"github.com/plus3/hexroads/roadnet"
	"github.com/plus3/hexroads/scene"
)

// generatorPanel edits Settings directly. Changes are picked up by the
// regeneration system on the next frame.
type generatorPanel struct {
	storage    *ecs.Storage
	regenerate func()
	save       func()
}

func (p *generatorPanel) item(order int) debugui.ImguiItem {
	return debugui.ImguiItem{Order: order, Render: p.render}
}

func (p *generatorPanel) render() {
	var settings *sim.Settings
	var info *sim.GenerationInfo
	if !p.storage.ReadSingleton(&settings) || !p.storage.ReadSingleton(&info) {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 200), imgui.CondOnce)
	if !imgui.BeginV("Generator", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(sim.StatusText(info))
	imgui.Text(fmt.Sprintf("Build time: %s", info.BuildTime))
	imgui.Separator()

	params := &settings.Params

	cols, rows := int32(params.Cols), int32(params.Rows)
	if imgui.SliderInt("cols", &cols, 1, scene.MaxBoardSide) {
		params.Cols = int(cols)
	}
	if imgui.SliderInt("rows", &rows, 1, scene.MaxBoardSide) {
		params.Rows = int(rows)
	}

	radius := float32(params.TileRadius)
	if imgui.SliderFloat("size", &radius, 5, 60) {
		params.TileRadius = float64(radius)
	}
	density := float32(params.Density)
	if imgui.SliderFloat("density", &density, 0, 1) {
		params.Density = float64(density)
	}
	scale := float32(params.NoiseScale)
	if imgui.SliderFloat("noise scale", &scale, 0.05, 2) {
		params.NoiseScale = float64(scale)
	}

	terrain := params.Mode == scene.Terrain3D
	if imgui.Checkbox("terrain", &terrain) {
		params.Mode = scene.Flat2D
		if terrain {
			params.Mode = scene.Terrain3D
		}
	}
	if terrain {
		height := float32(params.HeightScale)
		if imgui.SliderFloat("height", &height, 0, 120) {
			params.HeightScale = float64(height)
		}
	}

	simplex := params.Noise == roadnet.Simplex
	if imgui.Checkbox("simplex noise", &simplex) {
		params.Noise = roadnet.Perlin
		if simplex {
			params.Noise = roadnet.Simplex
		}
	}
	world := params.Sampling == roadnet.WorldSpace
	if imgui.Checkbox("world-space sampling", &world) {
		params.Sampling = roadnet.GridSpace
		if world {
			params.Sampling = roadnet.WorldSpace
		}
	}

	seed := int32(params.Seed)
	if imgui.InputInt("seed", &seed) {
		params.Seed = int64(seed)
	}

	if imgui.Button("Regenerate") && p.regenerate != nil {
		p.regenerate()
	}
	if p.save != nil {
		imgui.SameLine()
		if imgui.Button("Save") {
			p.save()
		}
	}

	imgui.End()
}
