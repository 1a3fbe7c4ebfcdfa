package scene

import "log/slog"

// flushTelemetry writes session stats when a window closes and perf stats
// every perfLogInterval ticks.
func (s *Scene) flushTelemetry() {
	tick := s.sim.Ticks()

	if s.collector.ShouldFlush(tick) {
		stats := s.collector.Flush(tick, s.sim.Time(), s.sim.Shape(), float64(s.sim.Spread()))
		if s.logStats {
			slog.Info("stats", "window", stats)
		}
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}

	if s.perfLogInterval == 0 || tick%s.perfLogInterval != 0 {
		return
	}
	perfStats := s.perf.Stats()
	if s.logStats {
		slog.Info("perf", "tick", tick, "stats", perfStats)
	}
	if err := s.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
