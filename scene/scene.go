// Package scene runs one frame of the experience: it drains the tracking
// mailbox, fires gesture-driven morphs, resolves the interaction, drives
// audio and advances the simulation.
package scene

import (
	"log/slog"

	"github.com/pthm-cable/nebula/audio"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/systems"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/tracking"
)

// Options wires a Scene to its collaborators. Sim, Mailbox and Session are
// required; the rest may be nil.
type Options struct {
	Sim      *systems.Simulation
	Mailbox  *tracking.Mailbox
	Session  *interaction.Session
	Feedback audio.Feedback

	Perf      *telemetry.PerfCollector
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager

	DT              float32 // seconds per frame
	PerfLogInterval int     // ticks between perf records, 0 = never
	LogStats        bool
}

// Scene owns the per-frame state. It must only be used from the render loop.
type Scene struct {
	sim      *systems.Simulation
	mailbox  *tracking.Mailbox
	session  *interaction.Session
	feedback audio.Feedback

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	dt              float32
	perfLogInterval uint64
	logStats        bool

	lastSeq   uint64
	hand      *gesture.HandData
	state     interaction.State
	intensity float64
	changes   int
}

// New creates a scene.
func New(opts Options) *Scene {
	s := &Scene{
		sim:       opts.Sim,
		mailbox:   opts.Mailbox,
		session:   opts.Session,
		feedback:  opts.Feedback,
		perf:      opts.Perf,
		collector: opts.Collector,
		output:    opts.Output,
		dt:        opts.DT,
		logStats:  opts.LogStats,
	}
	if s.feedback == nil {
		s.feedback = audio.Silent{}
	}
	if s.perf == nil {
		s.perf = telemetry.NewPerfCollector(60)
	}
	if s.collector == nil {
		s.collector = telemetry.NewCollector(10, s.dt)
	}
	if opts.PerfLogInterval > 0 {
		s.perfLogInterval = uint64(opts.PerfLogInterval)
	}
	return s
}

// Start moves the session to Running and sets the idle audio level.
// Returns false if it was already running.
func (s *Scene) Start() bool {
	if !s.session.Start() {
		return false
	}
	s.setIntensity(interaction.Intensity(s.state, true))
	return true
}

// Step advances one frame. Before Start it does nothing.
func (s *Scene) Step(pointer interaction.Pointer) {
	if !s.session.Running() {
		return
	}
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseInput)
	s.drainMailbox()
	s.state = interaction.Resolve(s.hand, pointer)

	s.perf.StartPhase(telemetry.PhaseAudio)
	s.setIntensity(interaction.Intensity(s.state, true))

	s.perf.StartPhase(telemetry.PhaseSimulate)
	s.sim.Tick(s.dt, s.state)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordTick(s.state)
	s.flushTelemetry()

	s.perf.EndTick()
}

// drainMailbox takes the newest tracking result. Gestures are only acted on
// when a new result arrived, so a stale lock cannot re-fire.
func (s *Scene) drainMailbox() {
	data, seq := s.mailbox.Latest()
	if seq == s.lastSeq {
		return
	}
	s.lastSeq = seq
	s.hand = data
	s.session.SetHandFound(data != nil)
	if data == nil {
		return
	}
	if a, ok := interaction.ShouldMorph(data.Gesture, s.sim.Shape()); ok {
		s.change(a, telemetry.CauseGesture)
	}
}

// Select morphs to a from a manual pick. Picking the current shape is a no-op.
func (s *Scene) Select(a shapes.Archetype) bool {
	if !s.session.Running() || !a.Valid() {
		return false
	}
	return s.change(a, telemetry.CauseManual)
}

func (s *Scene) change(a shapes.Archetype, cause telemetry.ChangeCause) bool {
	from := s.sim.Shape()
	if !s.sim.SetShape(a) {
		return false
	}
	s.changes++
	s.feedback.TriggerTransition()
	s.collector.RecordChange(cause)
	ev := telemetry.NewShapeChangeEvent(s.sim.Ticks(), s.sim.Time(), from, a, cause)
	if err := s.output.WriteEvent(ev); err != nil {
		slog.Error("failed to write event", "error", err)
	}
	slog.Info("shape changed", "from", from.String(), "to", a.String(), "cause", cause.String(), "tick", s.sim.Ticks())
	return true
}

func (s *Scene) setIntensity(v float64) {
	if v == s.intensity {
		return
	}
	s.intensity = v
	s.feedback.SetInteractionIntensity(v)
}

// Sim returns the simulation.
func (s *Scene) Sim() *systems.Simulation { return s.sim }

// Session returns the session state.
func (s *Scene) Session() *interaction.Session { return s.session }

// State returns the interaction resolved on the last step.
func (s *Scene) State() interaction.State { return s.state }

// Hand returns the latest tracking result, nil when no hand is tracked.
func (s *Scene) Hand() *gesture.HandData { return s.hand }

// Intensity returns the last audio level sent.
func (s *Scene) Intensity() float64 { return s.intensity }

// Changes returns how many shape changes happened.
func (s *Scene) Changes() int { return s.changes }

// Perf returns the frame timing collector.
func (s *Scene) Perf() *telemetry.PerfCollector { return s.perf }
