// Package interaction fuses hand tracking and mouse input into the single
// point and active flag that drive the force field and audio.
package interaction

import (
	"strings"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/shapes"
)

// Source identifies which input produced a State.
type Source uint8

const (
	SourceMouse Source = iota
	SourceHand
)

func (s Source) String() string {
	if s == SourceHand {
		return "hand"
	}
	return "mouse"
}

// State is the resolved interaction for one tick.
type State struct {
	Point  shapes.Vec3
	Active bool
	Source Source
}

// Pointer is mouse input already normalised to world units.
type Pointer struct {
	X, Y float32
	Down bool
}

// Resolve picks the hand when one is present, otherwise the mouse.
// Switching is immediate; the two are never blended.
func Resolve(hand *gesture.HandData, mouse Pointer) State {
	if hand != nil {
		return State{Point: hand.Point, Active: hand.Pinching, Source: SourceHand}
	}
	return State{
		Point:  shapes.Vec3{X: mouse.X, Y: mouse.Y},
		Active: mouse.Down,
		Source: SourceMouse,
	}
}

// ShouldMorph returns the archetype a smoothed gesture asks for, and whether
// that differs from the shape already shown.
func ShouldMorph(smoothed gesture.Gesture, current shapes.Archetype) (shapes.Archetype, bool) {
	a, ok := smoothed.Archetype()
	if !ok || a == current {
		return current, false
	}
	return a, true
}

// Audio intensity levels.
const (
	IntensityOff    = 0.0
	IntensityIdle   = 0.2
	IntensityActive = 1.0
)

// Intensity maps the resolved interaction to a continuous audio level.
func Intensity(st State, running bool) float64 {
	switch {
	case !running:
		return IntensityOff
	case st.Active:
		return IntensityActive
	default:
		return IntensityIdle
	}
}

// StatusText is the centre HUD caption: the locked gesture while a hand is
// tracked, a search prompt otherwise.
func StatusText(handFound bool, smoothed gesture.Gesture) string {
	if !handFound {
		return "Awaiting interaction..."
	}
	if smoothed == gesture.None {
		return "SEARCHING..."
	}
	return strings.ToUpper(smoothed.String())
}
