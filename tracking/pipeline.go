package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pthm-cable/nebula/gesture"
)

// Source delivers detector output one camera frame at a time. A nil frame
// with a nil error means no hand was found. io.EOF ends the stream.
type Source interface {
	Next(ctx context.Context) (*gesture.HandFrame, error)
	Close() error
}

const (
	// MaxFailStreak is how many frames in a row may fail before Run gives up.
	MaxFailStreak = 30
	// DefaultRetryDelay is the pause after a failed frame, about one frame
	// at 30 fps.
	DefaultRetryDelay = 33 * time.Millisecond
)

// ErrSourceFailed is returned by Run when the source keeps failing.
var ErrSourceFailed = errors.New("tracking source failed")

// Pipeline pulls frames from a Source, classifies and smooths them, and
// publishes each result to a Mailbox.
type Pipeline struct {
	src     Source
	tracker *gesture.Tracker
	mailbox *Mailbox

	frames     uint64
	frameErrs  uint64
	streak     int
	retryDelay time.Duration
	onPublish  func(*gesture.HandData)
}

// NewPipeline wires a source to a mailbox through tracker.
func NewPipeline(src Source, tracker *gesture.Tracker, mailbox *Mailbox) *Pipeline {
	return &Pipeline{
		src:        src,
		tracker:    tracker,
		mailbox:    mailbox,
		retryDelay: DefaultRetryDelay,
	}
}

// OnPublish registers a hook called after every publish, on the pipeline
// goroutine. Used by tests.
func (p *Pipeline) OnPublish(fn func(*gesture.HandData)) {
	p.onPublish = fn
}

// Run processes frames until ctx is cancelled or the source is exhausted.
// A failing frame degrades to "no hand" and is not retried; Run pauses for
// the retry delay after it and returns ErrSourceFailed once MaxFailStreak
// frames in a row have failed.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frame, err := p.src.Next(ctx)
		switch {
		case errors.Is(err, io.EOF):
			slog.Info("tracking source exhausted", "frames", p.frames)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			p.frameErrs++
			p.streak++
			if p.frameErrs == 1 || p.frameErrs%100 == 0 {
				slog.Warn("tracking frame failed", "error", err, "failures", p.frameErrs)
			}
			frame = nil
		default:
			p.streak = 0
		}

		p.frames++
		data := p.tracker.Process(frame)
		p.mailbox.Publish(data)
		if p.onPublish != nil {
			p.onPublish(data)
		}

		if p.streak == 0 {
			continue
		}
		if p.streak >= MaxFailStreak {
			return fmt.Errorf("%w: %d frames in a row: %w", ErrSourceFailed, p.streak, err)
		}
		if !p.sleep(ctx) {
			return nil
		}
	}
}

// sleep waits out the retry delay. Returns false if ctx ended first.
func (p *Pipeline) sleep(ctx context.Context) bool {
	if p.retryDelay <= 0 {
		return true
	}
	t := time.NewTimer(p.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Frames returns how many frames Run processed. Only read it after Run returns.
func (p *Pipeline) Frames() uint64 {
	return p.frames
}
