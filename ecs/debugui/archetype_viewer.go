package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexroads/ecs"
)

// Archetype viewer table columns.
const (
	archColumnID = iota
	archColumnComponents
	archColumnEntities
)

// ArchetypeViewer lists every archetype with its component set and population.
// Clicking a row calls OnSelect with the archetype id.
type ArchetypeViewer struct {
	storage *ecs.Storage

	OnSelect func(id uint32)

	rows          []ecs.ArchetypeStats
	selected      uint32
	hasSelection  bool
	sortColumn    int
	sortAscending bool
}

// NewArchetypeViewer sorts by entity count, largest first.
func NewArchetypeViewer(storage *ecs.Storage) *ArchetypeViewer {
	return &ArchetypeViewer{storage: storage, sortColumn: archColumnEntities}
}

// Item wraps the viewer as an ImguiItem.
func (av *ArchetypeViewer) Item(order int) ImguiItem {
	return ImguiItem{Order: order, Render: av.Render}
}

// Refresh re-reads the archetypes from storage and applies the sort order.
func (av *ArchetypeViewer) Refresh() {
	av.rows = av.storage.CollectStats().ArchetypeBreakdown
	sort.SliceStable(av.rows, func(i, j int) bool {
		a, b := av.rows[i], av.rows[j]
		var less bool
		switch av.sortColumn {
		case archColumnID:
			less = a.ID < b.ID
		case archColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.EntityCount < b.EntityCount
		}
		if !av.sortAscending {
			return !less
		}
		return less
	})
}

// Rows returns the archetypes as of the last Refresh.
func (av *ArchetypeViewer) Rows() []ecs.ArchetypeStats {
	return av.rows
}

// Select marks id as the chosen archetype and notifies OnSelect.
func (av *ArchetypeViewer) Select(id uint32) {
	av.selected, av.hasSelection = id, true
	if av.OnSelect != nil {
		av.OnSelect(id)
	}
}

// Render draws the viewer. Must run between the backend's BeginFrame and EndFrame.
func (av *ArchetypeViewer) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 180), imgui.CondOnce)
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.Refresh()
	largest := 0
	for _, row := range av.rows {
		largest = max(largest, row.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.Refresh()
			specs.SetSpecsDirty(false)
		}

		for _, row := range av.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := av.hasSelection && av.selected == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", row.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				av.Select(row.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))
			if largest > 0 {
				width := float32(row.EntityCount) / float32(largest) * 80
				imgui.SameLine()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}
	imgui.End()
}
