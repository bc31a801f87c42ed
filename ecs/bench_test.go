package ecs_test

import (
	"testing"

	"github.com/plus3/hexroads/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Cell{Q: i, R: -i}, Height(1))
	}
}

func BenchmarkDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Cell{Q: i}, Height(1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Delete(ids[i])
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Cell{Q: i}, Height(float64(i)))
		storage.Spawn(Cell{Q: i})
	}
	query := ecs.NewQuery[struct {
		*Cell
		Height *Height `ecs:"optional"`
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
	}
}

func BenchmarkRebuild(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&rebuildSystem{Size: 400})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0)
	}
}
