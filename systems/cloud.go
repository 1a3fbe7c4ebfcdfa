package systems

import "github.com/pthm-cable/nebula/shapes"

// Cloud holds per-particle state in flat interleaved buffers so they can be
// handed straight to the renderer. Index i is the same particle for the
// lifetime of the cloud.
type Cloud struct {
	Positions shapes.Buffer // xyz
	Colors    []float32     // rgb in [0,1]
}

// NewCloud creates a cloud with particles at the given positions, coloured white.
func NewCloud(initial shapes.Buffer) *Cloud {
	colors := make([]float32, len(initial))
	for i := range colors {
		colors[i] = 1
	}
	return &Cloud{
		Positions: initial.Clone(),
		Colors:    colors,
	}
}

// Len returns the particle count.
func (c *Cloud) Len() int {
	return c.Positions.Len()
}

// Position returns particle i's position.
func (c *Cloud) Position(i int) shapes.Vec3 {
	return c.Positions.At(i)
}

// Color returns particle i's colour.
func (c *Cloud) Color(i int) (r, g, b float32) {
	j := i * 3
	return c.Colors[j], c.Colors[j+1], c.Colors[j+2]
}
