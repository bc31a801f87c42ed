package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/hexroads/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Cols     int
	Rows     int
	Mode     string

	// Results
	Generations    uint64
	TilesSpawned   int64
	RoadsSpawned   int64
	MaxEntities    int
	TotalTime      time.Duration
	UpdateTime     Stats
	BuildTime      Stats
	Storage        ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// PerSecond returns how many generations completed per second of wall time.
func (r *Report) PerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Generations) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Regeneration Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Board:** {{.Cols}}x{{.Rows}} ({{.Mode}})

## Regeneration Results
- **Generations:** {{comma .Generations}} ({{printf "%.1f" .PerSecond}}/s)
- **Tiles Spawned:** {{comma .TilesSpawned}}
- **Roads Spawned:** {{comma .RoadsSpawned}}
- **Peak Entities:** {{comma .MaxEntities}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Scene Build Time:**
  - **Avg:** {{.BuildTime.Avg}}
  - **Min:** {{.BuildTime.Min}}
  - **Max:** {{.BuildTime.Max}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Live Entities:** {{.Storage.TotalEntityCount}}
- **Singletons:** {{.Storage.SingletonCount}}
{{range .Storage.ArchetypeBreakdown}}  - archetype {{.ID}}: {{.EntityCount}} entities {{.ComponentTypes}}
{{end}}
## Memory Usage
- Heap Alloc:     {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end) -> delta: {{bdelta .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bdelta .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end) -> delta: {{bdelta .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bytes": humanize.Bytes,
		"bdelta": func(end, start uint64) string {
			if end >= start {
				return "+" + humanize.Bytes(end-start)
			}
			return "-" + humanize.Bytes(start-end)
		},
		"comma": func(v any) string {
			switch n := v.(type) {
			case int:
				return humanize.Comma(int64(n))
			case int64:
				return humanize.Comma(n)
			case uint64:
				return humanize.Comma(int64(n))
			}
			return "N/A"
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
