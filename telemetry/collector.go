package telemetry

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
)

// WindowStats holds aggregated session statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Shape           string  `csv:"shape"`

	// Input during window
	Ticks       int     `csv:"ticks"`
	HandTicks   int     `csv:"hand_ticks"`
	ActiveTicks int     `csv:"active_ticks"`
	HandShare   float64 `csv:"hand_share"`
	ActiveShare float64 `csv:"active_share"`

	// Shape changes during window
	GestureChanges int `csv:"gesture_changes"`
	ManualChanges  int `csv:"manual_changes"`

	// Mean particle distance to target at window end
	Spread float64 `csv:"spread"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", s.WindowEndTick),
		slog.String("shape", s.Shape),
		slog.Float64("hand_share", s.HandShare),
		slog.Float64("active_share", s.ActiveShare),
		slog.Int("gesture_changes", s.GestureChanges),
		slog.Int("manual_changes", s.ManualChanges),
		slog.Float64("spread", s.Spread),
	)
}

// Collector accumulates per-tick input and shape changes within windows.
type Collector struct {
	windowDurationTicks uint64
	windowStartTick     uint64

	ticks          int
	handTicks      int
	activeTicks    int
	gestureChanges int
	manualChanges  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each window lasts in simulated seconds
// dt: seconds per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticks := uint64(1)
	if dt > 0 && windowDurationSec > 0 {
		if n := uint64(math.Round(windowDurationSec / float64(dt))); n > 1 {
			ticks = n
		}
	}
	return &Collector{windowDurationTicks: ticks}
}

// RecordTick records the resolved interaction for one tick.
func (c *Collector) RecordTick(in interaction.State) {
	c.ticks++
	if in.Source == interaction.SourceHand {
		c.handTicks++
	}
	if in.Active {
		c.activeTicks++
	}
}

// RecordChange records a shape change.
func (c *Collector) RecordChange(cause ChangeCause) {
	if cause == CauseManual {
		c.manualChanges++
	} else {
		c.gestureChanges++
	}
}

// ShouldFlush returns true once the current window has elapsed.
func (c *Collector) ShouldFlush(tick uint64) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces stats for the current window and starts a new one.
func (c *Collector) Flush(tick uint64, simTime float64, shape shapes.Archetype, spread float64) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTime,
		Shape:           shape.String(),
		Ticks:           c.ticks,
		HandTicks:       c.handTicks,
		ActiveTicks:     c.activeTicks,
		GestureChanges:  c.gestureChanges,
		ManualChanges:   c.manualChanges,
		Spread:          spread,
	}
	if c.ticks > 0 {
		s.HandShare = float64(c.handTicks) / float64(c.ticks)
		s.ActiveShare = float64(c.activeTicks) / float64(c.ticks)
	}

	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		windowStartTick:     tick,
	}
	return s
}
