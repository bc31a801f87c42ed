// Package slider implements a horizontal drag widget that maps a handle
// position on a track to a numeric value.
//
// A slider is Idle until the pointer is pressed inside its handle, then
// Dragging until the pointer is released anywhere. While dragging, the handle
// follows the pointer's X coordinate, clamped to the track.
package slider

import (
	"fmt"
	"math"
)

// State is the drag state of a slider.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Rect is an axis-aligned rectangle in screen pixels, Y down.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Layout places a track relative to the window. Fractions are of the window
// width (left, width) and height (top); sizes are pixels.
type Layout struct {
	LeftFrac, WidthFrac, TopFrac float64
	TrackHeight                  float64
	HandleWidth, HandleHeight    float64
}

// DefaultLayout is a track across the middle half of the window.
func DefaultLayout() Layout {
	return Layout{
		LeftFrac:     0.25,
		WidthFrac:    0.5,
		TopFrac:      0.5,
		TrackHeight:  10,
		HandleWidth:  20,
		HandleHeight: 40,
	}
}

// At returns a copy of l moved to the given vertical fraction.
func (l Layout) At(topFrac float64) Layout {
	l.TopFrac = topFrac
	return l
}

// Track resolves the track rectangle for a window of w×h pixels.
func (l Layout) Track(w, h float64) Rect {
	return Rect{
		X: w * l.LeftFrac,
		Y: h * l.TopFrac,
		W: w * l.WidthFrac,
		H: l.TrackHeight,
	}
}

// Pointer is one frame of mouse input. Present is false when the cursor is
// outside the window.
type Pointer struct {
	X, Y         float64
	Present      bool
	JustPressed  bool
	JustReleased bool
}

// Slider maps a handle position to a value in [Min, Max]. A positive Step
// snaps values to Min + k*Step.
type Slider struct {
	Name   string
	Min    float64
	Max    float64
	Step   float64
	Format string

	layout   Layout
	track    Rect
	fraction float64
	state    State
}

// New returns an idle slider showing initial. Call Resize before the first
// Update so the track has a size.
func New(name string, min, max, initial float64, layout Layout) Slider {
	s := Slider{
		Name:   name,
		Min:    min,
		Max:    max,
		Format: "%s: %.2f",
		layout: layout,
	}
	s.SetValue(initial)
	return s
}

// Resize lays the track out for a w×h window, keeping the current value.
func (s *Slider) Resize(w, h float64) {
	s.track = s.layout.Track(w, h)
}

// Track returns the current track rectangle.
func (s *Slider) Track() Rect {
	return s.track
}

// travel is how far the handle's left edge can move.
func (s *Slider) travel() float64 {
	return max(s.track.W-s.layout.HandleWidth, 0)
}

// Offset returns the handle's distance from the start of the track.
func (s *Slider) Offset() float64 {
	return s.fraction * s.travel()
}

// Handle returns the handle rectangle, vertically centered on the track.
func (s *Slider) Handle() Rect {
	return Rect{
		X: s.track.X + s.Offset(),
		Y: s.track.Y + s.track.H/2 - s.layout.HandleHeight/2,
		W: s.layout.HandleWidth,
		H: s.layout.HandleHeight,
	}
}

// State returns the drag state.
func (s *Slider) State() State {
	return s.state
}

// Value returns the handle position rescaled into [Min, Max].
func (s *Slider) Value() float64 {
	v := s.Min + s.fraction*(s.Max-s.Min)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return min(max(v, s.Min), s.Max)
}

// SetValue moves the handle to v, clamped to [Min, Max].
func (s *Slider) SetValue(v float64) {
	if s.Max <= s.Min {
		s.fraction = 0
		return
	}
	v = min(max(v, s.Min), s.Max)
	s.fraction = (v - s.Min) / (s.Max - s.Min)
}

// Update applies one frame of pointer input and reports whether Value changed.
// A release always ends a drag; everything else is skipped while the pointer
// is outside the window.
func (s *Slider) Update(p Pointer) bool {
	if !p.Present {
		if p.JustReleased {
			s.state = Idle
		}
		return false
	}

	if p.JustPressed && s.state == Idle && s.Handle().Contains(p.X, p.Y) {
		s.state = Dragging
	}
	if p.JustReleased {
		s.state = Idle
	}
	if s.state != Dragging {
		return false
	}

	travel := s.travel()
	if travel == 0 {
		return false
	}

	before := s.Value()
	offset := min(max(p.X-s.track.X, 0), travel)
	s.fraction = offset / travel
	return s.Value() != before
}

// Label formats the slider name and value with Format.
func (s *Slider) Label() string {
	return fmt.Sprintf(s.Format, s.Name, s.Value())
}
