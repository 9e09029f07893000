package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hypewear-studio/models"
)

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-12.5))
	assert.Equal(t, 100.0, ClampPercent(120))
	assert.Equal(t, 42.7, ClampPercent(42.7))
	assert.Equal(t, 0.0, ClampPercent(0))
	assert.Equal(t, 100.0, ClampPercent(100))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0))
	assert.True(t, InRange(100))
	assert.True(t, InRange(50.5))
	assert.False(t, InRange(-0.1))
	assert.False(t, InRange(100.1))
}

func TestDeltaToPercent(t *testing.T) {
	s := Surface{Width: 400, Height: 200}

	dx, dy := DeltaToPercent(40, 40, s)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 20.0, dy)

	// Collapsed container must not produce NaN or infinite deltas
	dx, dy = DeltaToPercent(40, 40, Surface{})
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.0, dy)
}

func TestPercentToPixel(t *testing.T) {
	s := Surface{Width: 800, Height: 600}
	x, y := PercentToPixel(50, 25, s)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 150.0, y)
}

func TestDragMoveClampsToSurface(t *testing.T) {
	// Element centered at (50,50) on a 400x400 surface; the pointer travels
	// far enough past the top-right corner that the raw position would be
	// (120,-10). Stored position pins to the edges instead.
	d := &Drag{ElementID: "el", StartX: 200, StartY: 200, OriginX: 50, OriginY: 50}
	s := Surface{Width: 400, Height: 400}

	x, y := d.Move(480, -40, s)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 0.0, y)
}

func TestDragMoveResolutionIndependent(t *testing.T) {
	// The same fractional pointer travel yields the same percentage position
	// regardless of surface size.
	small := Surface{Width: 300, Height: 300}
	large := Surface{Width: 1200, Height: 1200}

	dSmall := &Drag{StartX: 0, StartY: 0, OriginX: 50, OriginY: 50}
	dLarge := &Drag{StartX: 0, StartY: 0, OriginX: 50, OriginY: 50}

	// A quarter of the surface in both axes
	xs, ys := dSmall.Move(75, 75, small)
	xl, yl := dLarge.Move(300, 300, large)

	assert.Equal(t, xs, xl)
	assert.Equal(t, ys, yl)
	assert.Equal(t, 75.0, xs)
	assert.Equal(t, 75.0, ys)
}

func TestDragMoveUsesLiveSurface(t *testing.T) {
	// A container resize mid-drag changes the conversion for the next pointer
	// event; the drag origin stays in percentage space, unaffected.
	d := &Drag{StartX: 100, StartY: 100, OriginX: 50, OriginY: 50}

	x, _ := d.Move(200, 100, Surface{Width: 400, Height: 400})
	assert.Equal(t, 75.0, x)

	x, _ = d.Move(200, 100, Surface{Width: 1000, Height: 1000})
	assert.Equal(t, 60.0, x)
}

func TestStepScale(t *testing.T) {
	assert.InDelta(t, 1.1, StepScale(1.0, 1), 1e-9)
	assert.InDelta(t, 0.9, StepScale(1.0, -1), 1e-9)

	// Clamped at both ends
	assert.Equal(t, models.MaxScale, StepScale(models.MaxScale, 1))
	assert.Equal(t, models.MinScale, StepScale(models.MinScale, -1))
	assert.InDelta(t, models.MaxScale, StepScale(2.95, 1), 1e-9)

	// Zero direction is a no-op
	assert.Equal(t, 1.5, StepScale(1.5, 0))
}

func TestStepRotateAccumulates(t *testing.T) {
	assert.Equal(t, 15.0, StepRotate(0, 1))
	assert.Equal(t, -15.0, StepRotate(0, -1))

	// Rotation is not normalized: 24 steps clockwise read as 360, not 0
	r := 0.0
	for i := 0; i < 24; i++ {
		r = StepRotate(r, 1)
	}
	assert.Equal(t, 360.0, r)

	// And it keeps going
	assert.Equal(t, 375.0, StepRotate(r, 1))
}
