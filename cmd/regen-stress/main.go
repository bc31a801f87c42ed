package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/internal/sim"
	"github.com/plus3/hexroads/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	cols := flag.Int("cols", 20, "Board columns.")
	rows := flag.Int("rows", 20, "Board rows.")
	terrain := flag.Bool("terrain", false, "Build 3D terrain tiles instead of flat ones.")
	seed := flag.Int64("seed", 42, "Seed for the noise fields and the parameter walk.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting regeneration stress test...")

	params := scene.DefaultParams()
	params.Cols, params.Rows = *cols, *rows
	params.Seed = *seed
	if *terrain {
		params.Mode = scene.Terrain3D
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("Bad parameters: %v", err)
	}

	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	sim.Install(storage, params, 1280, 720, sim.DefaultSliders())

	scheduler := ecs.NewScheduler(storage)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	sim.RegisterSystems(scheduler, quiet)

	var settings *sim.Settings
	var info *sim.GenerationInfo
	storage.ReadSingleton(&settings)
	storage.ReadSingleton(&info)

	report := &Report{
		Duration:       *duration,
		Cols:           params.Cols,
		Rows:           params.Rows,
		Mode:           params.Mode.String(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running regeneration loop for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	walk := rand.New(rand.NewSource(*seed))
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			// Every frame changes a parameter, so every frame is a full rebuild.
			if walk.Intn(2) == 0 {
				settings.Params.Density = walk.Float64()
			} else {
				settings.Params.TileRadius = 5 + walk.Float64()*55
			}

			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.BuildTime.Samples = append(report.BuildTime.Samples, info.BuildTime)

			report.TilesSpawned += int64(info.Tiles)
			report.RoadsSpawned += int64(info.Roads)
			report.MaxEntities = max(report.MaxEntities, storage.Len())

			if want := info.Tiles + info.Roads; liveSceneEntities(storage) != want {
				log.Fatalf("Generation %d left %d scene entities, want %d",
					info.Generation, liveSceneEntities(storage), want)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Generations = info.Generation
	report.UpdateTime.Finalize()
	report.BuildTime.Finalize()
	report.Storage = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Regeneration loop finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func liveSceneEntities(storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ *sim.HexTile }](storage).Values() {
		n++
	}
	for range ecs.NewView[struct{ *sim.RoadSegment }](storage).Values() {
		n++
	}
	return n
}
