package ecs_test

import (
	"testing"

	"github.com/plus3/hexroads/ecs"
	"github.com/stretchr/testify/assert"
)

type rebuildSystem struct {
	Cells ecs.Query[struct {
		ecs.EntityId
		*Cell
	}]
	Size int
}

func (s *rebuildSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.DeleteAll(s.Cells.Entities())
	for q := 0; q < s.Size; q++ {
		frame.Commands.Spawn(Cell{Q: q})
	}
}

func TestCommandsDeferredUntilFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	frameStorage := storage
	commands := &ecs.Commands{}

	commands.Spawn(Cell{Q: 1})
	commands.Spawn(Cell{Q: 2})
	spawns, deletes := commands.Pending()
	assert.Equal(t, 2, spawns)
	assert.Equal(t, 0, deletes)
	assert.Equal(t, 0, storage.Len())

	ran := false
	commands.Defer(func() {
		ran = true
		assert.Equal(t, 2, frameStorage.Len(), "defers run after spawns")
	})

	commands.Flush(storage)
	assert.True(t, ran)
	assert.Equal(t, 2, storage.Len())

	spawns, deletes = commands.Pending()
	assert.Zero(t, spawns)
	assert.Zero(t, deletes)
}

func TestCommandsRebuildLeavesOneGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	system := &rebuildSystem{Size: 5}
	scheduler.Register(system)

	scheduler.Once(0)
	assert.Equal(t, 5, storage.Len())

	system.Size = 3
	scheduler.Once(0)
	assert.Equal(t, 3, storage.Len())

	system.Size = 8
	scheduler.Once(0)
	assert.Equal(t, 8, storage.Len())

	view := ecs.NewView[struct{ *Cell }](storage)
	seen := map[int]int{}
	for item := range view.Values() {
		seen[item.Cell.Q]++
	}
	for q := 0; q < 8; q++ {
		assert.Equal(t, 1, seen[q], "cell %d", q)
	}
}
