package audio

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Params configures the engine.
type Params struct {
	SampleRate     beep.SampleRate
	BufferDuration time.Duration

	DroneFrequency  float64 // Hz
	DroneQ          float64
	CutoffBase      float64 // Hz at intensity 0
	CutoffRange     float64 // Hz added at intensity 1
	GainBase        float64
	GainRange       float64
	SpringFrequency float64 // angular frequency of the smoothing springs

	TransitionDuration time.Duration
	TransitionAttack   time.Duration
	TransitionPeak     float64
	TransitionFloor    float64
	TransitionCenter   float64 // band-pass centre, Hz
	TransitionQ        float64
}

// DefaultParams returns the stock sound design.
func DefaultParams() Params {
	return Params{
		SampleRate:         44100,
		BufferDuration:     50 * time.Millisecond,
		DroneFrequency:     55,
		DroneQ:             1,
		CutoffBase:         400,
		CutoffRange:        2000,
		GainBase:           0.1,
		GainRange:          0.3,
		SpringFrequency:    15,
		TransitionDuration: 500 * time.Millisecond,
		TransitionAttack:   100 * time.Millisecond,
		TransitionPeak:     0.4,
		TransitionFloor:    0.001,
		TransitionCenter:   1000,
		TransitionQ:        1,
	}
}

func (p Params) envelope() envelope {
	return envelope{
		attack: p.TransitionAttack.Seconds(),
		end:    p.TransitionDuration.Seconds(),
		peak:   p.TransitionPeak,
		floor:  p.TransitionFloor,
	}
}

// Engine synthesises the drone and transition sweeps as a beep.Streamer.
// Feedback methods may be called from any goroutine.
type Engine struct {
	params Params

	mu        sync.Mutex
	intensity float64
	pending   []*sweep
	drone     *drone
	master    *masterGain
	mixer     beep.Mixer
	rng       *rand.Rand

	started bool
}

// NewEngine builds an engine. rng seeds the noise bursts; nil uses seed 1.
func NewEngine(p Params, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Engine{
		params: p,
		drone:  newDrone(p),
		master: newMasterGain(p),
		rng:    rng,
	}
	e.mixer.Add(e.drone)
	return e
}

// Start opens the audio device and begins playback.
func (e *Engine) Start() error {
	sr := e.params.SampleRate
	if err := speaker.Init(sr, sr.N(e.params.BufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(e)
	e.started = true
	slog.Info("audio started", "sample_rate", int(sr))
	return nil
}

// Close stops playback and releases the device. Safe to call when Start was
// never called.
func (e *Engine) Close() error {
	if !e.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	e.started = false
	return nil
}

// SetInteractionIntensity implements Feedback.
func (e *Engine) SetInteractionIntensity(v float64) {
	v = clamp01(v)
	e.mu.Lock()
	e.intensity = v
	e.mu.Unlock()
}

// Intensity returns the current target intensity.
func (e *Engine) Intensity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intensity
}

// TriggerTransition implements Feedback.
func (e *Engine) TriggerTransition() {
	e.mu.Lock()
	e.pending = append(e.pending, newSweep(e.params, e.rng))
	e.mu.Unlock()
}

// ActiveTransitions returns the number of sweeps still sounding or queued.
func (e *Engine) ActiveTransitions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len() - 1 + len(e.pending)
}

// Stream implements beep.Streamer. It never drains.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.pending {
		e.mixer.Add(s)
	}
	e.pending = e.pending[:0]

	p := e.params
	e.drone.targetCutoff = p.CutoffBase + p.CutoffRange*e.intensity
	e.master.target = p.GainBase + p.GainRange*e.intensity
	n, ok = e.mixer.Stream(samples)
	e.master.apply(samples[:n])
	return n, ok
}

// Err implements beep.Streamer.
func (e *Engine) Err() error { return nil }
