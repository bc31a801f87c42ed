package slider_test

import (
	"fmt"
	"testing"

	"github.com/plus3/hexroads/slider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 800x600 window: track from x=200 to x=600 at y=300, handle travel 380.
func newSlider(t *testing.T) slider.Slider {
	t.Helper()
	s := slider.New("density", 0, 1, 0, slider.DefaultLayout())
	s.Resize(800, 600)
	return s
}

func press(x, y float64) slider.Pointer {
	return slider.Pointer{X: x, Y: y, Present: true, JustPressed: true}
}

func move(x, y float64) slider.Pointer {
	return slider.Pointer{X: x, Y: y, Present: true}
}

func release(x, y float64) slider.Pointer {
	return slider.Pointer{X: x, Y: y, Present: true, JustReleased: true}
}

func TestLayoutTrack(t *testing.T) {
	track := slider.DefaultLayout().Track(800, 600)
	assert.Equal(t, slider.Rect{X: 200, Y: 300, W: 400, H: 10}, track)

	moved := slider.DefaultLayout().At(0.1).Track(800, 600)
	assert.InDelta(t, 60, moved.Y, 1e-9)
}

func TestHandleCenteredOnTrack(t *testing.T) {
	s := newSlider(t)
	h := s.Handle()
	assert.Equal(t, 200.0, h.X)
	assert.Equal(t, 285.0, h.Y)
	assert.Equal(t, 20.0, h.W)
	assert.Equal(t, 40.0, h.H)
}

func TestPressOutsideHandleStaysIdle(t *testing.T) {
	s := newSlider(t)
	assert.False(t, s.Update(press(400, 305)))
	assert.Equal(t, slider.Idle, s.State())

	assert.False(t, s.Update(move(500, 305)))
	assert.Equal(t, 0.0, s.Offset())
}

func TestDragMovesHandle(t *testing.T) {
	s := newSlider(t)

	s.Update(press(205, 305))
	require.Equal(t, slider.Dragging, s.State())

	assert.True(t, s.Update(move(390, 305)))
	assert.InDelta(t, 190, s.Offset(), 1e-9)
	assert.InDelta(t, 0.5, s.Value(), 1e-9)

	// Vertical position does not matter once dragging.
	s.Update(move(390, 10))
	assert.Equal(t, slider.Dragging, s.State())
}

func TestDragClampsToTrack(t *testing.T) {
	s := newSlider(t)
	s.Update(press(205, 305))

	s.Update(move(10, 305))
	assert.Equal(t, 0.0, s.Offset())
	assert.Equal(t, 0.0, s.Value())

	s.Update(move(5000, 305))
	assert.InDelta(t, 380, s.Offset(), 1e-9)
	assert.Equal(t, 1.0, s.Value())
}

func TestReleaseAnywhereEndsDrag(t *testing.T) {
	s := newSlider(t)
	s.Update(press(205, 305))
	s.Update(move(300, 305))
	before := s.Offset()

	assert.False(t, s.Update(release(700, 20)))
	assert.Equal(t, slider.Idle, s.State())
	assert.Equal(t, before, s.Offset())

	s.Update(move(500, 305))
	assert.Equal(t, before, s.Offset())
}

func TestAbsentPointerSkipsFrame(t *testing.T) {
	s := newSlider(t)
	s.Update(press(205, 305))
	s.Update(move(300, 305))
	before := s.Offset()

	assert.False(t, s.Update(slider.Pointer{X: 5000}))
	assert.Equal(t, before, s.Offset())
	assert.Equal(t, slider.Dragging, s.State())

	s.Update(slider.Pointer{JustReleased: true})
	assert.Equal(t, slider.Idle, s.State())
}

func TestValueMonotoneAndBounded(t *testing.T) {
	s := slider.New("radius", 5, 60, 5, slider.DefaultLayout())
	s.Resize(1024, 768)
	track := s.Track()
	require.Equal(t, track.X, s.Handle().X)

	s.Update(press(s.Handle().X, s.Handle().Y+1))
	require.Equal(t, slider.Dragging, s.State())

	prevOffset, prevValue := s.Offset(), s.Value()
	for x := track.X - 50; x <= track.X+track.W+50; x += 3 {
		s.Update(move(x, 0))
		offset, v := s.Offset(), s.Value()
		assert.GreaterOrEqual(t, offset, prevOffset)
		if offset > prevOffset {
			assert.Greater(t, v, prevValue)
		} else {
			assert.Equal(t, prevValue, v)
		}
		assert.GreaterOrEqual(t, v, 5.0)
		assert.LessOrEqual(t, v, 60.0)
		prevOffset, prevValue = offset, v
	}
	assert.Equal(t, 60.0, prevValue)
}

func TestStepQuantizes(t *testing.T) {
	s := slider.New("cols", 1, 32, 10, slider.DefaultLayout())
	s.Step = 1
	s.Resize(800, 600)
	assert.Equal(t, 10.0, s.Value())

	s.Update(press(s.Handle().X+1, 305))
	for x := 150.0; x < 650; x += 7 {
		s.Update(move(x, 305))
		v := s.Value()
		assert.Equal(t, float64(int(v)), v)
	}
}

func TestUpdateReportsOnlyValueChanges(t *testing.T) {
	s := slider.New("cols", 1, 3, 1, slider.DefaultLayout())
	s.Step = 1
	s.Resize(800, 600)
	s.Update(press(205, 305))

	assert.False(t, s.Update(move(201, 305)))
	assert.True(t, s.Update(move(590, 305)))
	assert.False(t, s.Update(move(595, 305)))
}

func TestResizePreservesValue(t *testing.T) {
	s := newSlider(t)
	s.SetValue(0.75)
	s.Resize(1600, 900)
	assert.InDelta(t, 0.75, s.Value(), 1e-9)
	assert.InDelta(t, 0.75*(800-20), s.Offset(), 1e-9)
}

func TestSetValueClamps(t *testing.T) {
	s := newSlider(t)
	s.SetValue(3)
	assert.Equal(t, 1.0, s.Value())
	s.SetValue(-1)
	assert.Equal(t, 0.0, s.Value())
}

func TestDegenerateRange(t *testing.T) {
	s := slider.New("fixed", 2, 2, 7, slider.DefaultLayout())
	s.Resize(800, 600)
	assert.Equal(t, 2.0, s.Value())
}

func TestLabel(t *testing.T) {
	s := newSlider(t)
	s.SetValue(0.5)
	assert.Equal(t, "density: 0.50", s.Label())

	s.Format = "%s=%.0f%%"
	s.Max = 100
	assert.Equal(t, "density=50%", s.Label())
}

func ExampleSlider_Update() {
	s := slider.New("size", 0, 100, 0, slider.DefaultLayout())
	s.Resize(800, 600)

	s.Update(slider.Pointer{X: 205, Y: 300, Present: true, JustPressed: true})
	s.Update(slider.Pointer{X: 390, Y: 300, Present: true})
	fmt.Println(s.State(), s.Label())

	s.Update(slider.Pointer{X: 390, Y: 300, Present: true, JustReleased: true})
	fmt.Println(s.State())
	// Output:
	// dragging size: 50.00
	// idle
}
