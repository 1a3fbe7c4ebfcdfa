package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/tracking"
	"github.com/pthm-cable/nebula/tracking/webcam"
)

var errTrackingDisabled = errors.New("tracking disabled")

// startTracking probes the input source once and, if it opens, runs the
// pipeline until Unload. A failed probe leaves the session on mouse input.
func (g *Game) startTracking() {
	g.ctx, g.cancel = context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(g.ctx)
	g.group = group

	group.Go(func() error {
		src, err := g.openSource()
		if err != nil {
			if g.session.ReportCamera(false) && !errors.Is(err, errTrackingDisabled) {
				slog.Warn("hand tracking unavailable, using mouse", "error", err)
			}
			return nil
		}
		defer src.Close()
		g.session.ReportCamera(true)
		slog.Info("hand tracking started", "replay", g.replayPath != "")

		tracker := gesture.NewTracker(classifierParams(g.cfg), g.cfg.Gesture.Window, g.cfg.Gesture.Majority)
		pipeline := tracking.NewPipeline(src, tracker, g.mailbox)
		err = pipeline.Run(ctx)
		if errors.Is(err, tracking.ErrSourceFailed) {
			g.mailbox.Publish(nil)
			slog.Warn("hand tracking lost, using mouse", "error", err, "frames", pipeline.Frames())
			return nil
		}
		if err != nil {
			return fmt.Errorf("tracking pipeline: %w", err)
		}
		slog.Info("hand tracking stopped", "frames", pipeline.Frames())
		return nil
	})
}

func (g *Game) openSource() (tracking.Source, error) {
	switch {
	case g.replayPath != "":
		return tracking.OpenReplay(g.replayPath, g.cfg.Derived.ReplayInterval, g.cfg.Tracking.ReplayLoop)
	case g.noCamera || !g.cfg.Tracking.Enabled:
		return nil, errTrackingDisabled
	}
	return webcam.Open(webcamConfig(g.cfg))
}

// stopTracking cancels the pipeline and waits for it to exit.
func (g *Game) stopTracking() {
	if g.cancel == nil {
		return
	}
	g.cancel()
	if err := g.group.Wait(); err != nil {
		slog.Error("tracking exited with error", "error", err)
	}
	g.cancel = nil
}
