// Package game hosts the hex road demo in an Ebiten window.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/ecs/debugui"
	debugui_ebiten "github.com/plus3/hexroads/ecs/debugui/ebiten"
	"github.com/plus3/hexroads/internal/sim"
	"github.com/plus3/hexroads/internal/store"
	"github.com/plus3/hexroads/scene"
)

// Options configures a Game.
type Options struct {
	Title         string
	Width, Height int
	Params        scene.Params
	// FontPath is a TrueType/OpenType file for labels. Empty or unreadable
	// falls back to the debug font.
	FontPath string
	// Debug opens the Dear ImGui generator, performance, archetype and entity
	// panels.
	Debug bool
	// Store, when set, enables saving the current scene.
	Store  *store.DB
	Logger *slog.Logger
}

// Game implements ebiten.Game. Update runs the input and simulation systems;
// Draw runs the camera and render systems over the flushed result.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler
	render  *RenderSystem
	regen   *sim.RegenerateSystem
	imgui   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	logger  *slog.Logger
	store   *store.DB
}

// New builds the world and its systems. With Debug set it also creates the
// ImGui backend, which owns the window.
func New(opts Options) (*Game, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	sliders := sim.DefaultSliders()
	if opts.Params.Mode == scene.Terrain3D {
		sliders = sim.TerrainSliders()
	}
	sim.Install(storage, opts.Params, float64(opts.Width), float64(opts.Height), sliders)
	ecs.NewSingleton(storage, debugui.ImguiInputState{})

	g := &Game{
		storage: storage,
		update:  ecs.NewScheduler(storage),
		draw:    ecs.NewScheduler(storage),
		logger:  logger,
		store:   opts.Store,
	}

	if opts.Debug {
		ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height))
		g.imgui = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage)
		g.update.Register(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(opts.Width, opts.Height)
		ebiten.SetWindowTitle(opts.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.update.Register(&PointerSystem{})
	keys := &KeySystem{}
	if g.store != nil {
		keys.Save = g.save
	}
	g.update.Register(keys)
	g.regen = sim.RegisterSystems(g.update, logger)

	g.render = &RenderSystem{}
	if opts.FontPath != "" {
		face, err := LoadFont(opts.FontPath, LabelFontSize)
		if err != nil {
			logger.Warn("label font unavailable, using debug font", "error", err)
		} else {
			g.render.Font = face
		}
	}
	g.draw.Register(&sim.CameraSystem{})
	g.draw.Register(g.render)

	if opts.Debug {
		panel := &generatorPanel{storage: storage, regenerate: g.regen.Regenerate}
		if g.store != nil {
			panel.save = g.save
		}
		storage.Spawn(panel.item(0))
		storage.Spawn(debugui.NewPerformancePanel(storage, g.update, 120).Item(1))

		browser := debugui.NewEntityBrowser(storage, 50)
		archetypes := debugui.NewArchetypeViewer(storage)
		archetypes.OnSelect = browser.FilterArchetype
		storage.Spawn(archetypes.Item(2))
		storage.Spawn(browser.Item(3))
	}
	return g, nil
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.Get().BeginFrame()
	}
	g.update.Once(1.0 / float64(ebiten.TPS()))
	if g.imgui != nil {
		g.imgui.Get().EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.screen = screen
	g.draw.Once(0)
	g.render.screen = nil

	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	var vp *sim.Viewport
	if g.storage.ReadSingleton(&vp) {
		vp.Width, vp.Height = float64(outsideWidth), float64(outsideHeight)
	}
	if g.imgui != nil {
		g.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Scene returns the generation currently on screen.
func (g *Game) Scene() *scene.Scene {
	return g.regen.Scene()
}

func (g *Game) save() {
	s := g.regen.Scene()
	if s == nil || g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := g.store.SaveScene(ctx, s)
	if err != nil {
		g.logger.Error("save scene", "error", err)
		return
	}
	g.logger.Info("scene saved", "id", id, "tiles", len(s.Tiles), "roads", len(s.Roads))
}
