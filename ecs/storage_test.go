package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/hexroads/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestStorageSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Cell{Q: 2, R: 3}, Height(1.5))
	require.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))

	cell := ecs.ReadComponent[Cell](storage, id)
	require.NotNil(t, cell)
	assert.Equal(t, Cell{Q: 2, R: 3}, *cell)

	height := ecs.ReadComponent[Height](storage, id)
	require.NotNil(t, height)
	assert.Equal(t, Height(1.5), *height)

	assert.Nil(t, ecs.ReadComponent[Link](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Cell]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Marker]()))
}

func TestStorageSpawnByPointerCopies(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	cell := &Cell{Q: 1, R: 1}
	id := storage.Spawn(cell)
	cell.Q = 99

	assert.Equal(t, 1, ecs.ReadComponent[Cell](storage, id).Q)
}

func TestStorageArchetypeSharing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Cell{}, Marker("tile"))
	b := storage.Spawn(Marker("tile"), Cell{Q: 1})
	c := storage.Spawn(Cell{Q: 2})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId(), "component order must not matter")
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.Len(t, storage.Archetypes(), 2)
	assert.Equal(t, 3, storage.Len())
}

func TestStorageDeleteReusesSlots(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Cell{Q: 1})
	second := storage.Spawn(Cell{Q: 2})

	assert.True(t, storage.Delete(first))
	assert.False(t, storage.Delete(first), "double delete reports false")
	assert.False(t, storage.Alive(first))
	assert.Nil(t, storage.GetComponent(first, reflect.TypeFor[Cell]()))
	assert.Equal(t, 2, ecs.ReadComponent[Cell](storage, second).Q)

	third := storage.Spawn(Cell{Q: 3})
	assert.Equal(t, first.Index(), third.Index())
	assert.Equal(t, 2, storage.Len())
}

func TestStoragePointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Counter{Value: 7})
	counter := ecs.ReadComponent[Counter](storage, id)

	for i := 0; i < 500; i++ {
		storage.Spawn(Counter{Value: i})
	}

	counter.Value = 42
	assert.Equal(t, 42, ecs.ReadComponent[Counter](storage, id).Value)
}

func TestStorageSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Cell{}, Cell{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ X int }{}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestStorageSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var counter *Counter
	assert.False(t, storage.ReadSingleton(&counter))

	storage.AddSingleton(Counter{Value: 3})
	require.True(t, storage.ReadSingleton(&counter))
	assert.Equal(t, 3, counter.Value)

	counter.Value = 4
	var again *Counter
	require.True(t, storage.ReadSingleton(&again))
	assert.Equal(t, 4, again.Value)

	shared := &Link{From: Cell{Q: 1}}
	storage.AddSingleton(shared)
	var link *Link
	require.True(t, storage.ReadSingleton(&link))
	assert.Same(t, shared, link)
}

func TestSingletonFollowsReplacement(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	counter := ecs.NewSingleton(storage, Counter{Value: 1})
	require.Equal(t, 1, counter.Get().Value)

	storage.AddSingleton(Counter{Value: 2})
	assert.Equal(t, 2, counter.Get().Value)

	replacement := &Counter{Value: 3}
	storage.AddSingleton(replacement)
	assert.Same(t, replacement, counter.Get())

	late := ecs.NewSingleton[Counter](storage)
	assert.Same(t, replacement, late.Get())
}
