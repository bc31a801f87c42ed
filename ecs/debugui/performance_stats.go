package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexroads/ecs"
)

// PerformancePanel shows storage occupancy, per-system timings and a frame
// time graph.
type PerformancePanel struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	history []float32
	cursor  int
	last    time.Time
}

// NewPerformancePanel keeps historyFrames frame-time samples.
func NewPerformancePanel(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformancePanel {
	return &PerformancePanel{
		storage:   storage,
		scheduler: scheduler,
		history:   make([]float32, max(historyFrames, 1)),
	}
}

// Sample records the time since the previous call in milliseconds.
func (p *PerformancePanel) Sample(now time.Time) {
	if !p.last.IsZero() {
		p.history[p.cursor] = float32(now.Sub(p.last).Seconds() * 1000)
		p.cursor = (p.cursor + 1) % len(p.history)
	}
	p.last = now
}

// AverageFrameTime returns the mean of the recorded samples in milliseconds.
func (p *PerformancePanel) AverageFrameTime() float32 {
	var sum float32
	for _, ms := range p.history {
		sum += ms
	}
	return sum / float32(len(p.history))
}

// Item wraps the panel as an ImguiItem.
func (p *PerformancePanel) Item(order int) ImguiItem {
	return ImguiItem{Order: order, Render: p.Render}
}

// Render draws the panel. Must run between the backend's BeginFrame and EndFrame.
func (p *PerformancePanel) Render() {
	p.Sample(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 220), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := p.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	if p.scheduler != nil && imgui.TreeNodeStr("Systems") {
		for _, sys := range p.scheduler.GetStats().Systems {
			imgui.BulletText(fmt.Sprintf("%s: last %s, avg %s", sys.Name, sys.LastDuration, sys.AvgDuration))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X %v: %d", arch.ID, arch.ComponentTypes, arch.EntityCount))
		}
		imgui.TreePop()
	}

	imgui.End()
}
