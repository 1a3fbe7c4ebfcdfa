// Package audio turns interaction state into a filtered drone and a short
// noise sweep on every shape change.
package audio

import "sync"

// Feedback receives interaction events from the game loop.
type Feedback interface {
	// SetInteractionIntensity sets drone brightness and loudness. v is clamped to [0,1].
	SetInteractionIntensity(v float64)
	// TriggerTransition plays a one-shot sweep.
	TriggerTransition()
}

// Silent discards all feedback. Used for headless runs.
type Silent struct{}

func (Silent) SetInteractionIntensity(float64) {}
func (Silent) TriggerTransition()              {}

// Recorder keeps every call for inspection.
type Recorder struct {
	mu          sync.Mutex
	intensities []float64
	transitions int
}

func (r *Recorder) SetInteractionIntensity(v float64) {
	r.mu.Lock()
	r.intensities = append(r.intensities, clamp01(v))
	r.mu.Unlock()
}

func (r *Recorder) TriggerTransition() {
	r.mu.Lock()
	r.transitions++
	r.mu.Unlock()
}

// Intensities returns a copy of all intensities set so far.
func (r *Recorder) Intensities() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.intensities))
	copy(out, r.intensities)
	return out
}

// LastIntensity returns the most recent intensity, or 0 if none was set.
func (r *Recorder) LastIntensity() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intensities) == 0 {
		return 0
	}
	return r.intensities[len(r.intensities)-1]
}

// Transitions returns how many sweeps were triggered.
func (r *Recorder) Transitions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitions
}

func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
