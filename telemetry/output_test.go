package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/shapes"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("", "s")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager and no error, got %v, %v", om, err)
	}
	// Nil manager is a no-op
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvent(ShapeChangeEvent{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_HeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir, "abc")
	if err != nil {
		t.Fatal(err)
	}
	var s PerfStats
	s.AvgTickDuration = time.Millisecond
	for tick := uint64(1); tick <= 3; tick++ {
		if err := om.WritePerf(s, tick*600); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 600, Shape: "Heart"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	headers := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "tick,") {
			headers++
		}
	}
	if headers != 1 {
		t.Errorf("expected exactly one header, got %d", headers)
	}
}

func TestOutputManager_EventsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, "session-1")
	if err != nil {
		t.Fatal(err)
	}
	events := []ShapeChangeEvent{
		NewShapeChangeEvent(10, 0.16, shapes.Sphere, shapes.Heart, CauseGesture),
		NewShapeChangeEvent(90, 1.5, shapes.Heart, shapes.Saturn, CauseManual),
	}
	for _, ev := range events {
		if err := om.WriteEvent(ev); err != nil {
			t.Fatal(err)
		}
	}
	om.Close()

	f, err := os.Open(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var got []ShapeChangeEvent
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Session != "session-1" || got[0].To != "Heart" || got[0].Cause != CauseGesture {
		t.Errorf("unexpected first event %+v", got[0])
	}
	if got[1].From != "Heart" || got[1].Cause != CauseManual || got[1].Tick != 90 {
		t.Errorf("unexpected second event %+v", got[1])
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, "s")
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("snapshot should reload: %v", err)
	}
}
