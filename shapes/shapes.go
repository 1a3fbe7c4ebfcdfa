// Package shapes generates target point clouds for the particle morph.
package shapes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownArchetype is returned when parsing an unrecognised shape name.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype identifies one of the target shapes.
type Archetype uint8

const (
	Sphere Archetype = iota
	Heart
	Flower
	Saturn
	Fireworks
	numArchetypes
)

var archetypeNames = [numArchetypes]string{
	Sphere:    "Sphere",
	Heart:     "Heart",
	Flower:    "Flower",
	Saturn:    "Saturn",
	Fireworks: "Fireworks",
}

// All returns every archetype in display order.
func All() []Archetype {
	return []Archetype{Sphere, Heart, Flower, Saturn, Fireworks}
}

func (a Archetype) String() string {
	if a >= numArchetypes {
		return fmt.Sprintf("Archetype(%d)", uint8(a))
	}
	return archetypeNames[a]
}

// Valid reports whether a names a known shape.
func (a Archetype) Valid() bool {
	return a < numArchetypes
}

// ParseArchetype converts a case-insensitive shape name to an Archetype.
func ParseArchetype(name string) (Archetype, error) {
	for i, n := range archetypeNames {
		if strings.EqualFold(n, name) {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
}

// Vec3 is a point or direction in world units.
type Vec3 struct {
	X, Y, Z float32
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Buffer is an interleaved xyz point sequence. Index i occupies [3i, 3i+3).
type Buffer []float32

// NewBuffer allocates a zeroed buffer for count points.
func NewBuffer(count int) Buffer {
	if count < 0 {
		count = 0
	}
	return make(Buffer, count*3)
}

// Len returns the number of points.
func (b Buffer) Len() int {
	return len(b) / 3
}

// At returns point i.
func (b Buffer) At(i int) Vec3 {
	j := i * 3
	return Vec3{X: b[j], Y: b[j+1], Z: b[j+2]}
}

// Set writes point i.
func (b Buffer) Set(i int, p Vec3) {
	j := i * 3
	b[j] = p.X
	b[j+1] = p.Y
	b[j+2] = p.Z
}

// Clone returns an independent copy.
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}
