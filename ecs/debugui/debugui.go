// Package debugui renders Dear ImGui panels from ECS entities.
// Panels are ordinary entities carrying an ImguiItem; the ImguiSystem defers
// their render functions so they run after the frame's structural changes.
package debugui

import (
	"cmp"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexroads/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Lower Order values render first. Hidden items are skipped.
type ImguiItem struct {
	Order  int
	Hidden bool
	Render func()
}

// ImguiInputState mirrors Dear ImGui's input capture flags as a singleton.
// Game systems check it before reacting to the mouse or keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every visible panel.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]

	pending []*ImguiItem
}

// Execute updates input state and defers panel rendering.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	i.pending = i.pending[:0]
	for item := range i.Items.Values() {
		if !item.ImguiItem.Hidden && item.ImguiItem.Render != nil {
			i.pending = append(i.pending, item.ImguiItem)
		}
	}
	slices.SortStableFunc(i.pending, func(a, b *ImguiItem) int {
		return cmp.Compare(a.Order, b.Order)
	})

	for _, item := range i.pending {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the component types this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
