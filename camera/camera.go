// Package camera provides the fixed perspective view onto the particle cloud.
package camera

import (
	"math"

	"github.com/pthm-cable/nebula/shapes"
)

// Camera looks down -z from (0, 0, Distance) with +y up.
type Camera struct {
	// Eye distance from the origin along +z
	Distance float32

	// Vertical field of view in degrees
	FOVY float32

	// Clip planes
	Near, Far float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World units spanned by the full window for pointer input
	PointerScale float32
}

// New creates a camera with the default lens for the given viewport.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Distance:     600,
		FOVY:         75,
		Near:         1,
		Far:          3000,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		PointerScale: 1000,
	}
}

// Resize updates the viewport. Zero or negative sizes are ignored.
func (c *Camera) Resize(w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	c.ViewportW = w
	c.ViewportH = h
}

// Aspect returns width over height.
func (c *Camera) Aspect() float32 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// PointerToWorld maps a screen position to the z=0 interaction plane.
// The window centre is the origin and the edges sit at ±PointerScale/2; y is
// flipped so up on screen is +y.
func (c *Camera) PointerToWorld(sx, sy float32) (wx, wy float32) {
	if c.ViewportW == 0 || c.ViewportH == 0 {
		return 0, 0
	}
	wx = (sx/c.ViewportW - 0.5) * c.PointerScale
	wy = -(sy/c.ViewportH - 0.5) * c.PointerScale
	return wx, wy
}

func (c *Camera) focal() float32 {
	return float32(1 / math.Tan(float64(c.FOVY)*math.Pi/360))
}

// WorldToScreen projects p. visible is false when p lies outside the clip range.
func (c *Camera) WorldToScreen(p shapes.Vec3) (sx, sy float32, visible bool) {
	depth := c.Distance - p.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	f := c.focal()
	ndcX := f / c.Aspect() * p.X / depth
	ndcY := f * p.Y / depth
	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}
