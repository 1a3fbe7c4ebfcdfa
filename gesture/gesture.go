// Package gesture turns per-frame hand landmarks into a pinch flag, an
// interaction point and a temporally smoothed finger-count gesture.
package gesture

import (
	"github.com/pthm-cable/nebula/shapes"
)

// Gesture is a finger-count classification. None means no usable evidence.
type Gesture uint8

const (
	None Gesture = iota
	Sphere
	Heart
	Flower
	Saturn
	Fireworks
	numGestures
)

func (g Gesture) String() string {
	if g == None {
		return "None"
	}
	if a, ok := g.Archetype(); ok {
		return a.String()
	}
	return "Unknown"
}

// Archetype returns the shape a gesture selects. ok is false for None.
func (g Gesture) Archetype() (shapes.Archetype, bool) {
	switch g {
	case Sphere:
		return shapes.Sphere, true
	case Heart:
		return shapes.Heart, true
	case Flower:
		return shapes.Flower, true
	case Saturn:
		return shapes.Saturn, true
	case Fireworks:
		return shapes.Fireworks, true
	}
	return 0, false
}

// FromArchetype returns the gesture that selects a.
func FromArchetype(a shapes.Archetype) Gesture {
	switch a {
	case shapes.Sphere:
		return Sphere
	case shapes.Heart:
		return Heart
	case shapes.Flower:
		return Flower
	case shapes.Saturn:
		return Saturn
	case shapes.Fireworks:
		return Fireworks
	}
	return None
}

// ForRaisedCount maps a raised-finger count to a gesture.
func ForRaisedCount(n int) Gesture {
	switch {
	case n <= 1:
		return Sphere
	case n == 2:
		return Flower
	case n == 3:
		return Saturn
	case n == 4:
		return Heart
	case n == 5:
		return Fireworks
	}
	return None
}

// Landmark is one hand keypoint in normalised image space. Y grows downward.
type Landmark struct {
	X, Y, Z float64
}

// HandFrame is one detector sample. Only the first hand is ever tracked.
type HandFrame struct {
	Landmarks  []Landmark
	Confidence float64
}

// HandData is what the tracking side publishes for one processed frame.
type HandData struct {
	Point      shapes.Vec3
	Pinching   bool
	Gesture    Gesture // smoothed
	Raw        Gesture
	Raised     int
	Confidence float64
}
