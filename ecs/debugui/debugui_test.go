package debugui_test

import (
	"testing"

	"github.com/plus3/hexroads/ecs"
	"github.com/plus3/hexroads/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tile struct {
	Q, R int
}

type road struct {
	Value float64
}

func newStorage(t *testing.T) (*ecs.Storage, []ecs.EntityId, []ecs.EntityId) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[tile](registry)
	ecs.RegisterComponent[road](registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	var tiles, roads []ecs.EntityId
	for q := range 5 {
		tiles = append(tiles, storage.Spawn(tile{Q: q, R: -q}))
	}
	for i := range 2 {
		roads = append(roads, storage.Spawn(road{Value: 0.5 + float64(i)/10}))
	}
	return storage, tiles, roads
}

func TestEntityBrowserListsLiveEntities(t *testing.T) {
	storage, tiles, roads := newStorage(t)
	browser := debugui.NewEntityBrowser(storage, 10)
	browser.Refresh()

	rows := browser.Filtered()
	require.Len(t, rows, len(tiles)+len(roads))
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].ID, rows[i].ID)
	}

	storage.Delete(tiles[0])
	browser.Refresh()
	assert.Len(t, browser.Filtered(), len(tiles)+len(roads)-1)
}

func TestEntityBrowserFilters(t *testing.T) {
	storage, tiles, roads := newStorage(t)
	browser := debugui.NewEntityBrowser(storage, 10)
	browser.Refresh()

	browser.SetFilter("ROAD")
	rows := browser.Filtered()
	require.Len(t, rows, len(roads))
	assert.Equal(t, []string{"debugui_test.road"}, rows[0].ComponentTypes)

	browser.ClearFilter()
	browser.FilterArchetype(tiles[0].ArchetypeId())
	assert.Len(t, browser.Filtered(), len(tiles))

	browser.ClearFilter()
	assert.Len(t, browser.Filtered(), len(tiles)+len(roads))
}

func TestEntityBrowserDropsDeadSelection(t *testing.T) {
	storage, tiles, _ := newStorage(t)
	browser := debugui.NewEntityBrowser(storage, 10)

	browser.Select(tiles[2])
	id, ok := browser.Selected()
	require.True(t, ok)
	assert.Equal(t, tiles[2], id)

	storage.Delete(tiles[2])
	browser.Refresh()
	_, ok = browser.Selected()
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	storage, tiles, _ := newStorage(t)

	values := debugui.Describe(storage, tiles[3])
	require.Len(t, values, 1)
	assert.Equal(t, "debugui_test.tile", values[0].Type)
	assert.Equal(t, "{Q:3 R:-3}", values[0].Value)

	storage.Delete(tiles[3])
	assert.Empty(t, debugui.Describe(storage, tiles[3]))
}

func TestArchetypeViewerSelectsIntoBrowser(t *testing.T) {
	storage, tiles, roads := newStorage(t)
	browser := debugui.NewEntityBrowser(storage, 10)
	browser.Refresh()

	viewer := debugui.NewArchetypeViewer(storage)
	viewer.OnSelect = browser.FilterArchetype
	viewer.Refresh()

	rows := viewer.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, len(tiles), rows[0].EntityCount, "largest archetype first")
	assert.Equal(t, len(roads), rows[1].EntityCount)

	viewer.Select(roads[0].ArchetypeId())
	filtered := browser.Filtered()
	require.Len(t, filtered, len(roads))
	assert.Equal(t, roads[0].ArchetypeId(), filtered[0].ArchetypeID)
}
