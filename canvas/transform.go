// Package canvas implements the composition core for the custom garment
// studio: the percentage coordinate contract, the interactive session state
// machine, and the repair pass for out-of-range persisted coordinates.
//
// Positions live in percentage space: (x, y) is the element's center expressed
// as 0-100 of the composition surface's own width/height. This package is the
// single conversion boundary between device pixels and percentage space; the
// renderer and the editor both go through it, so the two code paths cannot
// drift apart.
package canvas

import "hypewear-studio/models"

// Surface is the live pixel size of a composition surface (editor viewport,
// thumbnail, print canvas). Drag handling re-reads it on every pointer move so
// container resizes mid-drag do not desynchronize cursor and element.
type Surface struct {
	Width  float64
	Height float64
}

// ClampPercent pins a coordinate to the visible surface. Dragging past an
// edge pins the element to that edge rather than letting it leave the surface.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// InRange reports whether a coordinate is a valid at-rest percentage
func InRange(v float64) bool {
	return v >= 0 && v <= 100
}

// DeltaToPercent converts a pixel delta into a percentage delta relative to
// the given surface. Zero-sized surfaces yield zero deltas so a collapsed
// container never produces NaN positions.
func DeltaToPercent(dxPx, dyPx float64, s Surface) (dxPct, dyPct float64) {
	if s.Width > 0 {
		dxPct = dxPx / s.Width * 100
	}
	if s.Height > 0 {
		dyPct = dyPx / s.Height * 100
	}
	return dxPct, dyPct
}

// PercentToPixel converts a percentage-space center position into pixel
// coordinates on the given surface. This is the only place renderers obtain
// pixel positions from.
func PercentToPixel(xPct, yPct float64, s Surface) (xPx, yPx float64) {
	return xPct / 100 * s.Width, yPct / 100 * s.Height
}

// Drag tracks one drag interaction: the pointer's screen coordinates and the
// element's percentage position recorded at interaction start.
type Drag struct {
	ElementID string
	StartX    float64 // pointer px at drag start
	StartY    float64
	OriginX   float64 // element pct at drag start
	OriginY   float64
}

// Move computes the element's new clamped position for the current pointer
// location. The surface is passed per call, not captured at drag start, so the
// conversion always uses the live geometry. O(1) per pointer event.
func (d *Drag) Move(pointerX, pointerY float64, s Surface) (x, y float64) {
	dxPct, dyPct := DeltaToPercent(pointerX-d.StartX, pointerY-d.StartY, s)
	return ClampPercent(d.OriginX + dxPct), ClampPercent(d.OriginY + dyPct)
}

// StepScale applies one scale action (direction +1 or -1) and clamps the
// result to the allowed range.
func StepScale(current float64, direction int) float64 {
	next := current
	if direction > 0 {
		next += models.ScaleStep
	} else if direction < 0 {
		next -= models.ScaleStep
	}
	if next < models.MinScale {
		return models.MinScale
	}
	if next > models.MaxScale {
		return models.MaxScale
	}
	return next
}

// StepRotate applies one rotate action (direction +1 or -1). Rotation is a
// running real number and is deliberately not normalized to 0-360: repeated
// rotation accumulates (24 steps show 360), which round-trips through storage.
func StepRotate(current float64, direction int) float64 {
	if direction > 0 {
		return current + models.RotateStep
	}
	if direction < 0 {
		return current - models.RotateStep
	}
	return current
}
