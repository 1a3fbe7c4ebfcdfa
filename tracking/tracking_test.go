package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/nebula/gesture"
)

func TestMailboxLatestWins(t *testing.T) {
	m := NewMailbox()
	d, seq := m.Latest()
	assert.Nil(t, d)
	assert.Zero(t, seq)

	a := &gesture.HandData{Raw: gesture.Heart}
	b := &gesture.HandData{Raw: gesture.Flower}
	m.Publish(a)
	m.Publish(b)

	d, seq = m.Latest()
	assert.Same(t, b, d)
	assert.Equal(t, uint64(2), seq)

	m.Publish(nil)
	d, seq = m.Latest()
	assert.Nil(t, d)
	assert.Equal(t, uint64(3), seq)
}

func TestMailboxConcurrentPublish(t *testing.T) {
	m := NewMailbox()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Publish(&gesture.HandData{})
			}
		}()
	}

	var last uint64
	for i := 0; i < 200; i++ {
		_, seq := m.Latest()
		assert.GreaterOrEqual(t, seq, last)
		last = seq
	}
	wg.Wait()

	_, seq := m.Latest()
	assert.Equal(t, uint64(800), seq)
}

// scriptSource replays a fixed list of results.
type scriptSource struct {
	frames []*gesture.HandFrame
	errs   []error
	i      int
}

func (s *scriptSource) Next(ctx context.Context) (*gesture.HandFrame, error) {
	if s.i >= len(s.frames) {
		return nil, io.EOF
	}
	f, err := s.frames[s.i], s.errs[s.i]
	s.i++
	return f, err
}

func (s *scriptSource) Close() error { return nil }

func openHand() *gesture.HandFrame {
	lm := make([]gesture.Landmark, gesture.MinLandmarks)
	for i := range lm {
		lm[i] = gesture.Landmark{X: 0.5, Y: 0.5}
	}
	for _, tip := range []int{gesture.IndexTip, gesture.MiddleTip, gesture.RingTip, gesture.PinkyTip} {
		lm[tip] = gesture.Landmark{X: 0.5, Y: 0.2}
	}
	lm[gesture.PinkyMCP] = gesture.Landmark{X: 0.3, Y: 0.6}
	lm[gesture.ThumbTip] = gesture.Landmark{X: 0.7, Y: 0.6}
	return &gesture.HandFrame{Landmarks: lm, Confidence: 0.9}
}

func TestPipelinePublishesEveryFrame(t *testing.T) {
	src := &scriptSource{
		frames: []*gesture.HandFrame{openHand(), nil, openHand(), openHand()},
		errs:   []error{nil, nil, errors.New("inference failed"), nil},
	}
	mb := NewMailbox()
	p := NewPipeline(src, gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6), mb)
	p.retryDelay = 0

	var published []*gesture.HandData
	p.OnPublish(func(d *gesture.HandData) { published = append(published, d) })

	require.NoError(t, p.Run(context.Background()))
	require.Len(t, published, 4)
	assert.NotNil(t, published[0])
	assert.Nil(t, published[1], "no-hand frame publishes nil")
	assert.Nil(t, published[2], "failed frame degrades to no hand")
	assert.NotNil(t, published[3])
	assert.Equal(t, gesture.Fireworks, published[3].Raw)
	assert.Equal(t, uint64(4), p.Frames())

	d, seq := mb.Latest()
	assert.Same(t, published[3], d)
	assert.Equal(t, uint64(4), seq)
}

// failingSource fails every read.
type failingSource struct{ reads int }

func (s *failingSource) Next(ctx context.Context) (*gesture.HandFrame, error) {
	s.reads++
	return nil, errors.New("read failed")
}

func (s *failingSource) Close() error { return nil }

func TestPipelineGivesUpOnFailingSource(t *testing.T) {
	src := &failingSource{}
	mb := NewMailbox()
	p := NewPipeline(src, gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6), mb)
	p.retryDelay = 0

	err := p.Run(context.Background())
	require.ErrorIs(t, err, ErrSourceFailed)
	assert.Equal(t, MaxFailStreak, src.reads)
	assert.Equal(t, uint64(MaxFailStreak), p.Frames())

	d, seq := mb.Latest()
	assert.Nil(t, d)
	assert.Equal(t, uint64(MaxFailStreak), seq)
}

func TestPipelineFailStreakResets(t *testing.T) {
	n := 2*MaxFailStreak - 2
	src := &scriptSource{
		frames: make([]*gesture.HandFrame, n),
		errs:   make([]error, n),
	}
	for i := range src.errs {
		if i != MaxFailStreak-1 {
			src.errs[i] = errors.New("read failed")
		}
	}
	p := NewPipeline(src, gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6), NewMailbox())
	p.retryDelay = 0

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, uint64(n), p.Frames())
}

func TestPipelineBacksOffAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPipeline(&failingSource{}, gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6), NewMailbox())
	p.retryDelay = time.Hour

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop while backing off")
	}
	assert.Equal(t, uint64(1), p.Frames())
}

// blockingSource blocks until its context is cancelled.
type blockingSource struct{}

func (blockingSource) Next(ctx context.Context) (*gesture.HandFrame, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) Close() error { return nil }

func TestPipelineStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPipeline(blockingSource{}, gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6), NewMailbox())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop after cancel")
	}
}

func recording(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("frame,landmark,x,y,z,confidence\n")
	for i := 0; i < gesture.MinLandmarks; i++ {
		fmt.Fprintf(&b, "0,%d,0.5,0.5,0,0.8\n", i)
	}
	b.WriteString("1,-1,0,0,0,0\n")
	// Frame 2 is absent. Frame 3 has landmarks listed out of order.
	for i := gesture.MinLandmarks - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "3,%d,%.2f,0.4,0,0.7\n", i, float64(i)/100)
	}
	return b.String()
}

func TestReplaySourceGroupsFrames(t *testing.T) {
	src, err := NewReplaySource(strings.NewReader(recording(t)), 0, false)
	require.NoError(t, err)
	require.Equal(t, 4, src.Len())

	ctx := context.Background()
	f0, err := src.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, f0)
	assert.Len(t, f0.Landmarks, gesture.MinLandmarks)
	assert.InDelta(t, 0.8, f0.Confidence, 1e-9)

	f1, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, f1)

	f2, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, f2)

	f3, err := src.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, f3)
	assert.InDelta(t, 0.05, f3.Landmarks[5].X, 1e-9)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReplaySourceLoops(t *testing.T) {
	src, err := NewReplaySource(strings.NewReader(recording(t)), 0, true)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 9; i++ {
		_, err := src.Next(ctx)
		require.NoError(t, err)
	}
}

func TestReplaySourceHonoursCancel(t *testing.T) {
	src, err := NewReplaySource(strings.NewReader(recording(t)), time.Hour, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	_, err = src.Next(ctx)
	require.NoError(t, err)

	cancel()
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
