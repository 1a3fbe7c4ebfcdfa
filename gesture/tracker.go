package gesture

// Tracker classifies frames and feeds the smoother. It is owned by one
// goroutine; the smoothing window survives frames without a hand.
type Tracker struct {
	params   ClassifierParams
	smoother *Smoother
}

// NewTracker creates a tracker with a fresh smoothing window.
func NewTracker(p ClassifierParams, window int, majority float64) *Tracker {
	return &Tracker{
		params:   p,
		smoother: NewSmoother(window, majority),
	}
}

// Process handles one detector result. A nil frame, or one that cannot be
// classified, yields nil: no pinch and no gesture for this frame.
func (t *Tracker) Process(frame *HandFrame) *HandData {
	if frame == nil {
		return nil
	}
	c, err := Classify(*frame, t.params)
	if err != nil {
		return nil
	}

	t.smoother.Push(c.Gesture)
	return &HandData{
		Point:      c.Point,
		Pinching:   c.Pinching,
		Gesture:    t.smoother.Smoothed(),
		Raw:        c.Gesture,
		Raised:     c.Raised,
		Confidence: frame.Confidence,
	}
}
