// Command hexroads generates hex boards with noise-gated road networks.
//
//	hexroads [flags]            open the interactive window
//	hexroads export [flags]     build a scene headlessly and save it
//	hexroads list -db PATH      list saved scenes
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/internal/game"
	"github.com/plus3/hexroads/internal/store"
	"github.com/plus3/hexroads/roadnet"
	"github.com/plus3/hexroads/scene"
)

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 && (args[0] == "export" || args[0] == "list") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "export":
		err = runExport(args)
	case "list":
		err = runList(args)
	default:
		err = runWindow(args)
	}
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		slog.Error(cmd+" failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// paramFlags binds the generator parameters to a flag set.
type paramFlags struct {
	params   scene.Params
	layout   string
	mode     string
	noise    string
	sampling string
}

func bindParams(fs *flag.FlagSet) *paramFlags {
	pf := &paramFlags{params: scene.DefaultParams()}
	p := &pf.params
	fs.IntVar(&p.Cols, "cols", p.Cols, "board columns")
	fs.IntVar(&p.Rows, "rows", p.Rows, "board rows")
	fs.Float64Var(&p.TileRadius, "radius", p.TileRadius, "tile radius in world units")
	fs.Float64Var(&p.Density, "density", p.Density, "road density in [0, 1]")
	fs.Int64Var(&p.Seed, "seed", p.Seed, "noise seed")
	fs.Float64Var(&p.NoiseScale, "noise-scale", p.NoiseScale, "noise sampling scale")
	fs.Float64Var(&p.HeightScale, "height", p.HeightScale, "terrain height scale (3d mode)")
	fs.StringVar(&pf.layout, "layout", p.Layout.String(), "hex layout: pointy or flat")
	fs.StringVar(&pf.mode, "mode", p.Mode.String(), "tile mode: 2d or 3d")
	fs.StringVar(&pf.noise, "noise", p.Noise.String(), "noise kind: perlin or simplex")
	fs.StringVar(&pf.sampling, "sampling", p.Sampling.String(), "noise domain: grid or world")
	return pf
}

func (pf *paramFlags) resolve() (scene.Params, error) {
	p := pf.params
	var err error
	if p.Layout, err = hexgrid.ParseLayout(pf.layout); err != nil {
		return p, err
	}
	if p.Mode, err = scene.ParseMode(pf.mode); err != nil {
		return p, err
	}
	if p.Noise, err = roadnet.ParseNoiseKind(pf.noise); err != nil {
		return p, err
	}
	if p.Sampling, err = roadnet.ParseSampling(pf.sampling); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func runWindow(args []string) error {
	fs := flag.NewFlagSet("hexroads", flag.ContinueOnError)
	pf := bindParams(fs)
	width := fs.Int("width", 1280, "window width")
	height := fs.Int("height", 720, "window height")
	font := fs.String("font", "", "label font file (TTF/OTF); empty uses the debug font")
	debug := fs.Bool("debug", false, "show the ImGui generator, performance and entity panels")
	dbPath := fs.String("db", "", "scene database; enables saving with S")
	open := fs.String("open", "", "start from the params of a saved scene id (needs -db)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := setupLogger(*verbose)

	params, err := pf.resolve()
	if err != nil {
		return err
	}

	var db *store.DB
	if *dbPath != "" {
		db, err = store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("database opened", "path", *dbPath)
	}

	if *open != "" {
		if db == nil {
			return errors.New("-open needs -db")
		}
		id, err := uuid.Parse(*open)
		if err != nil {
			return fmt.Errorf("scene id: %w", err)
		}
		saved, err := db.LoadScene(context.Background(), id)
		if err != nil {
			return err
		}
		params = saved.Params
		logger.Info("opened saved scene", "id", id, "tiles", len(saved.Tiles), "roads", len(saved.Roads))
	}

	g, err := game.New(game.Options{
		Title:    "Hex Roads",
		Width:    *width,
		Height:   *height,
		Params:   params,
		FontPath: *font,
		Debug:    *debug,
		Store:    db,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting",
		"board", fmt.Sprintf("%dx%d", params.Cols, params.Rows),
		"mode", params.Mode,
		"layout", params.Layout,
		"seed", params.Seed,
	)
	return g.Run()
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	pf := bindParams(fs)
	dbPath := fs.String("db", "hexroads.db", "scene database")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := setupLogger(*verbose)

	params, err := pf.resolve()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := scene.Build(params)
	if err != nil {
		return err
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveScene(ctx, s)
	if err != nil {
		return err
	}
	logger.Info("scene exported", "id", id, "path", *dbPath, "tiles", len(s.Tiles), "roads", len(s.Roads))
	fmt.Println(id)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dbPath := fs.String("db", "hexroads.db", "scene database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogger(false)

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	scenes, err := db.ListScenes(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tBOARD\tMODE\tDENSITY\tSEED\tTILES\tROADS")
	for _, s := range scenes {
		p := s.Params
		fmt.Fprintf(w, "%s\t%s\t%dx%d %s\t%s\t%.2f\t%d\t%s\t%s\n",
			s.ID, humanize.Time(s.CreatedAt), p.Cols, p.Rows, p.Layout, p.Mode, p.Density, p.Seed,
			humanize.Comma(int64(s.Tiles)), humanize.Comma(int64(s.Roads)))
	}
	return w.Flush()
}
