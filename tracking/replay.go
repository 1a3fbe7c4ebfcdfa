package tracking

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nebula/gesture"
)

// LandmarkRecord is one row of a landmark recording. Rows sharing a frame
// number form one HandFrame. A row with a negative landmark index marks a
// frame with no hand; frame numbers missing from the file are also empty.
type LandmarkRecord struct {
	Frame      int     `csv:"frame"`
	Landmark   int     `csv:"landmark"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Z          float64 `csv:"z"`
	Confidence float64 `csv:"confidence"`
}

// ReplaySource plays back a recorded landmark stream at a fixed frame rate.
type ReplaySource struct {
	frames   []*gesture.HandFrame
	interval time.Duration
	next     int
	loop     bool
	lastEmit time.Time
}

// OpenReplay loads a recording from a CSV file.
func OpenReplay(path string, interval time.Duration, loop bool) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay: %w", err)
	}
	defer f.Close()
	return NewReplaySource(f, interval, loop)
}

// NewReplaySource parses a recording. interval 0 replays as fast as possible.
func NewReplaySource(r io.Reader, interval time.Duration, loop bool) (*ReplaySource, error) {
	var records []*LandmarkRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("parsing replay: %w", err)
	}
	return &ReplaySource{
		frames:   groupFrames(records),
		interval: interval,
		loop:     loop,
	}, nil
}

// groupFrames builds one slot per frame number from 0 to the highest seen.
func groupFrames(records []*LandmarkRecord) []*gesture.HandFrame {
	if len(records) == 0 {
		return nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Frame != records[j].Frame {
			return records[i].Frame < records[j].Frame
		}
		return records[i].Landmark < records[j].Landmark
	})

	last := records[len(records)-1].Frame
	if last < 0 {
		return nil
	}
	frames := make([]*gesture.HandFrame, last+1)
	for _, rec := range records {
		if rec.Frame < 0 || rec.Landmark < 0 {
			continue
		}
		f := frames[rec.Frame]
		if f == nil {
			f = &gesture.HandFrame{Confidence: rec.Confidence}
			frames[rec.Frame] = f
		}
		for len(f.Landmarks) <= rec.Landmark {
			f.Landmarks = append(f.Landmarks, gesture.Landmark{})
		}
		f.Landmarks[rec.Landmark] = gesture.Landmark{X: rec.X, Y: rec.Y, Z: rec.Z}
	}
	return frames
}

// Len returns the number of frames in the recording.
func (s *ReplaySource) Len() int {
	return len(s.frames)
}

// Next returns the next recorded frame, pacing output to the frame interval.
func (s *ReplaySource) Next(ctx context.Context) (*gesture.HandFrame, error) {
	if s.next >= len(s.frames) {
		if !s.loop || len(s.frames) == 0 {
			return nil, io.EOF
		}
		s.next = 0
	}

	if s.interval > 0 && !s.lastEmit.IsZero() {
		wait := s.interval - time.Since(s.lastEmit)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	s.lastEmit = time.Now()

	f := s.frames[s.next]
	s.next++
	return f, nil
}

// Close is a no-op; the recording is held in memory.
func (s *ReplaySource) Close() error {
	return nil
}
