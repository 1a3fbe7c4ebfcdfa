package telemetry

import (
	"testing"

	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
)

func TestCollector_Window(t *testing.T) {
	c := NewCollector(1, 0.1) // 10 ticks per window

	var tick uint64
	for ; tick < 10; tick++ {
		if c.ShouldFlush(tick) {
			t.Fatalf("flushed early at tick %d", tick)
		}
		in := interaction.State{Source: interaction.SourceMouse}
		if tick < 4 {
			in = interaction.State{Source: interaction.SourceHand, Active: tick%2 == 0}
		}
		c.RecordTick(in)
	}
	c.RecordChange(CauseGesture)
	c.RecordChange(CauseManual)
	c.RecordChange(CauseManual)

	if !c.ShouldFlush(tick) {
		t.Fatal("expected flush after 10 ticks")
	}
	s := c.Flush(tick, 1, shapes.Heart, 12.5)
	if s.Ticks != 10 || s.HandTicks != 4 || s.ActiveTicks != 2 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.HandShare != 0.4 || s.ActiveShare != 0.2 {
		t.Errorf("unexpected shares %v %v", s.HandShare, s.ActiveShare)
	}
	if s.GestureChanges != 1 || s.ManualChanges != 2 {
		t.Errorf("unexpected changes %+v", s)
	}
	if s.Shape != "Heart" || s.Spread != 12.5 {
		t.Errorf("unexpected shape/spread %+v", s)
	}

	// New window starts empty
	if c.ShouldFlush(tick + 1) {
		t.Error("new window should not flush immediately")
	}
	next := c.Flush(tick+10, 2, shapes.Heart, 0)
	if next.Ticks != 0 || next.HandShare != 0 || next.WindowStartTick != tick {
		t.Errorf("expected reset window, got %+v", next)
	}
}
