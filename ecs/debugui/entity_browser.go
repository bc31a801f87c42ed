package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexroads/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// ComponentValue is a printed component of the selected entity.
type ComponentValue struct {
	Type  string
	Value string
}

// maxValueLen keeps mesh-sized components from flooding the details pane.
const maxValueLen = 160

// Entity browser table columns.
const (
	entityColumnID = iota
	entityColumnArchetype
	entityColumnComponents
)

// EntityBrowser is a paged, filterable table of live entities with the
// selected entity's components printed below it. Entities are re-read on
// every frame since regeneration replaces them wholesale.
type EntityBrowser struct {
	storage  *ecs.Storage
	pageSize int

	entities      []EntityInfo
	filterText    string
	archetype     uint32
	hasArchetype  bool
	page          int
	selected      ecs.EntityId
	hasSelection  bool
	sortColumn    int
	sortAscending bool
}

// NewEntityBrowser shows pageSize rows per page.
func NewEntityBrowser(storage *ecs.Storage, pageSize int) *EntityBrowser {
	return &EntityBrowser{
		storage:       storage,
		pageSize:      max(pageSize, 1),
		sortAscending: true,
	}
}

// Item wraps the browser as an ImguiItem.
func (eb *EntityBrowser) Item(order int) ImguiItem {
	return ImguiItem{Order: order, Render: eb.Render}
}

// Refresh re-reads every live entity from storage.
func (eb *EntityBrowser) Refresh() {
	eb.entities = eb.entities[:0]
	for _, archetype := range eb.storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	eb.sortEntities()

	if eb.hasSelection && !eb.storage.Alive(eb.selected) {
		eb.hasSelection = false
	}
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool
		switch eb.sortColumn {
		case entityColumnArchetype:
			less = a.ArchetypeID < b.ArchetypeID
		case entityColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.ID < b.ID
		}
		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter keeps rows whose id, archetype or component names contain text.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.page = 0
}

// FilterArchetype limits the table to one archetype.
func (eb *EntityBrowser) FilterArchetype(id uint32) {
	eb.archetype, eb.hasArchetype = id, true
	eb.page = 0
}

// ClearFilter shows every entity again.
func (eb *EntityBrowser) ClearFilter() {
	eb.filterText = ""
	eb.hasArchetype = false
	eb.page = 0
}

// Filtered returns the rows that pass the current filters.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && !eb.hasArchetype {
		return eb.entities
	}

	needle := strings.ToLower(eb.filterText)
	out := make([]EntityInfo, 0, len(eb.entities))
	for _, e := range eb.entities {
		if eb.hasArchetype && e.ArchetypeID != eb.archetype {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(fmt.Sprintf("%d 0x%x %s", e.ID, e.ArchetypeID, strings.Join(e.ComponentTypes, " ")))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Select picks the entity whose components are shown.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected, eb.hasSelection = id, true
}

// Selected returns the selected entity, if it is still alive.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	if !eb.hasSelection || !eb.storage.Alive(eb.selected) {
		return 0, false
	}
	return eb.selected, true
}

// Describe prints every component of a live entity, in archetype order.
func Describe(storage *ecs.Storage, id ecs.EntityId) []ComponentValue {
	if !storage.Alive(id) {
		return nil
	}
	var values []ComponentValue
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() != id.ArchetypeId() {
			continue
		}
		for _, t := range archetype.Types() {
			value := fmt.Sprintf("%+v", storage.GetComponent(id, t))
			value = strings.TrimPrefix(value, "&")
			if len(value) > maxValueLen {
				value = value[:maxValueLen] + "..."
			}
			values = append(values, ComponentValue{Type: t.String(), Value: value})
		}
	}
	return values
}

// Render draws the browser. Must run between the backend's BeginFrame and EndFrame.
func (eb *EntityBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 200), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	filter := eb.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		eb.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.ClearFilter()
	}
	if eb.hasArchetype {
		imgui.Text(fmt.Sprintf("Archetype 0x%X", eb.archetype))
	}

	rows := eb.Filtered()
	pages := max((len(rows)+eb.pageSize-1)/eb.pageSize, 1)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			rows = eb.Filtered()
			specs.SetSpecsDirty(false)
		}

		start := eb.page * eb.pageSize
		end := min(start+eb.pageSize, len(rows))
		for _, e := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), eb.hasSelection && eb.selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(e.ID)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.page > 0 {
		eb.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.page < pages-1 {
		eb.page++
	}

	if id, ok := eb.Selected(); ok {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Entity %d", id))
		for _, c := range Describe(eb.storage, id) {
			imgui.TextWrapped(fmt.Sprintf("%s: %s", c.Type, c.Value))
		}
	}
	imgui.End()
}
