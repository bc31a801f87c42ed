package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/hexroads/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tallySystem struct {
	Cells ecs.Query[struct{ *Cell }]
	Total ecs.Singleton[Counter]
	runs  int
}

func (s *tallySystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	s.Total.Get().Value = s.Cells.Len()
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Cell{Q: 9})
}

func TestSchedulerBindsFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	total := ecs.NewSingleton[Counter](storage)
	scheduler := ecs.NewScheduler(storage)

	tally := &tallySystem{}
	scheduler.Register(tally)

	storage.Spawn(Cell{Q: 1})
	storage.Spawn(Cell{Q: 2})

	scheduler.Once(1.0 / 60.0)
	assert.Equal(t, 1, tally.runs)
	assert.Equal(t, 2, total.Get().Value)

	storage.Spawn(Cell{Q: 3})
	scheduler.Once(1.0 / 60.0)
	assert.Equal(t, 3, total.Get().Value, "queries refresh before each run")
	assert.Equal(t, int64(2), scheduler.Frames())
}

func TestSchedulerSpawnsVisibleNextFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	ecs.NewSingleton[Counter](storage)

	tally := &tallySystem{}
	scheduler.Register(&spawnOnceSystem{})
	scheduler.Register(tally)

	scheduler.Once(0)
	assert.Equal(t, 0, tally.Total.Get().Value)

	scheduler.Once(0)
	assert.Equal(t, 1, tally.Total.Get().Value)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	ecs.NewSingleton[Counter](storage)

	tally := &tallySystem{}
	scheduler.Register(tally)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
	assert.Positive(t, tally.runs)
}

type sleepSystem struct {
	d time.Duration
}

func (s *sleepSystem) Execute(frame *ecs.UpdateFrame) {
	time.Sleep(s.d)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)
	assert.Zero(t, stats.TotalExecutions)

	scheduler.Register(&sleepSystem{d: time.Millisecond})
	scheduler.Register(&sleepSystem{d: 2 * time.Millisecond})

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	for _, sys := range stats.Systems {
		assert.Equal(t, "sleepSystem", sys.Name)
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
		assert.Positive(t, sys.LastDuration)
	}
}
