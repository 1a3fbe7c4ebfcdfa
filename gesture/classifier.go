package gesture

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/nebula/shapes"
)

// ErrTooFewLandmarks is returned for frames that cannot be classified.
var ErrTooFewLandmarks = errors.New("too few landmarks")

// Landmark indices used by the classifier (21-point hand model).
const (
	ThumbTip  = 4
	IndexPIP  = 6
	IndexTip  = 8
	MiddlePIP = 10
	MiddleTip = 12
	RingPIP   = 14
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyTip  = 20

	MinLandmarks = 21
)

// World mapping of the index fingertip.
const (
	pointScaleXY = 1000.0
	pointScaleZ  = 500.0
)

// fingerJoints pairs each non-thumb tip with the joint below it.
var fingerJoints = [4][2]int{
	{IndexTip, IndexPIP},
	{MiddleTip, MiddlePIP},
	{RingTip, RingPIP},
	{PinkyTip, PinkyPIP},
}

// ClassifierParams holds the classification thresholds.
type ClassifierParams struct {
	PinchThreshold float64 // thumb/index tip distance below which the hand pinches
	ThumbThreshold float64 // thumb tip to pinky base x distance above which the thumb is out
}

// DefaultClassifierParams returns the stock thresholds.
func DefaultClassifierParams() ClassifierParams {
	return ClassifierParams{
		PinchThreshold: 0.05,
		ThumbThreshold: 0.1,
	}
}

// Classification is the per-frame result before smoothing.
type Classification struct {
	Pinching bool
	Raised   int
	Gesture  Gesture
	Point    shapes.Vec3
}

// Classify inspects one frame. It has no side effects.
func Classify(frame HandFrame, p ClassifierParams) (Classification, error) {
	lm := frame.Landmarks
	if len(lm) < MinLandmarks {
		return Classification{}, fmt.Errorf("%w: got %d, need %d", ErrTooFewLandmarks, len(lm), MinLandmarks)
	}

	raised := CountRaised(lm, p.ThumbThreshold)
	return Classification{
		Pinching: IsPinching(lm[IndexTip], lm[ThumbTip], p.PinchThreshold),
		Raised:   raised,
		Gesture:  ForRaisedCount(raised),
		Point:    ToWorld(lm[IndexTip]),
	}, nil
}

// IsPinching reports whether the two tips are strictly closer than threshold.
func IsPinching(index, thumb Landmark, threshold float64) bool {
	dx := index.X - thumb.X
	dy := index.Y - thumb.Y
	dz := index.Z - thumb.Z
	return math.Sqrt(dx*dx+dy*dy+dz*dz) < threshold
}

// CountRaised counts extended fingers. lm must hold MinLandmarks points.
func CountRaised(lm []Landmark, thumbThreshold float64) int {
	n := 0
	for _, f := range fingerJoints {
		if lm[f[0]].Y < lm[f[1]].Y {
			n++
		}
	}
	if math.Abs(lm[ThumbTip].X-lm[PinkyMCP].X) > thumbThreshold {
		n++
	}
	return n
}

// ToWorld maps a normalised landmark into centred world units.
func ToWorld(l Landmark) shapes.Vec3 {
	return shapes.Vec3{
		X: float32((l.X - 0.5) * pointScaleXY),
		Y: float32(-(l.Y - 0.5) * pointScaleXY),
		Z: float32(l.Z * pointScaleZ),
	}
}
