package interaction

import (
	"testing"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/shapes"
)

func TestResolvePrefersHand(t *testing.T) {
	hand := &gesture.HandData{Point: shapes.Vec3{X: 10, Y: 20, Z: 30}, Pinching: true}
	mouse := Pointer{X: -100, Y: -200, Down: false}

	st := Resolve(hand, mouse)
	if st.Source != SourceHand {
		t.Fatalf("expected hand source, got %s", st.Source)
	}
	if st.Point != hand.Point || !st.Active {
		t.Errorf("expected hand point and pinch, got %+v", st)
	}
}

func TestResolveFallsBackToMouse(t *testing.T) {
	st := Resolve(nil, Pointer{X: 5, Y: -7, Down: true})
	if st.Source != SourceMouse {
		t.Fatalf("expected mouse source, got %s", st.Source)
	}
	want := shapes.Vec3{X: 5, Y: -7, Z: 0}
	if st.Point != want || !st.Active {
		t.Errorf("expected %+v active, got %+v", want, st)
	}
}

func TestShouldMorph(t *testing.T) {
	tests := []struct {
		name     string
		smoothed gesture.Gesture
		current  shapes.Archetype
		want     shapes.Archetype
		ok       bool
	}{
		{"ambiguous", gesture.None, shapes.Sphere, shapes.Sphere, false},
		{"same shape", gesture.Sphere, shapes.Sphere, shapes.Sphere, false},
		{"new shape", gesture.Heart, shapes.Sphere, shapes.Heart, true},
		{"back to sphere", gesture.Sphere, shapes.Saturn, shapes.Sphere, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ShouldMorph(tc.smoothed, tc.current)
			if got != tc.want || ok != tc.ok {
				t.Errorf("ShouldMorph(%s, %s) = (%s, %v), want (%s, %v)",
					tc.smoothed, tc.current, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestIntensity(t *testing.T) {
	if v := Intensity(State{Active: true}, false); v != IntensityOff {
		t.Errorf("expected silence before start, got %f", v)
	}
	if v := Intensity(State{Active: true}, true); v != IntensityActive {
		t.Errorf("expected full intensity when active, got %f", v)
	}
	if v := Intensity(State{}, true); v != IntensityIdle {
		t.Errorf("expected idle intensity, got %f", v)
	}
}

func TestSessionForwardOnly(t *testing.T) {
	var s Session
	if s.Phase() != NotStarted {
		t.Fatalf("expected not started, got %s", s.Phase())
	}
	if !s.Start() {
		t.Fatal("first Start should succeed")
	}
	if s.Start() {
		t.Error("second Start should report false")
	}
	if !s.Running() {
		t.Error("expected running")
	}
}

func TestSessionCameraReportedOnce(t *testing.T) {
	var s Session
	if s.Camera() != CameraUnknown {
		t.Fatalf("expected unknown camera, got %s", s.Camera())
	}
	if !s.ReportCamera(false) {
		t.Fatal("first report should be kept")
	}
	if s.ReportCamera(true) {
		t.Error("second report should be ignored")
	}
	if s.Camera() != CameraUnavailable {
		t.Errorf("expected unavailable, got %s", s.Camera())
	}
}

func TestHUDCaptions(t *testing.T) {
	if got := CameraEnabled.ModeLabel(); got != "Active CV Link" {
		t.Errorf("enabled label = %q", got)
	}
	for _, c := range []CameraState{CameraUnknown, CameraUnavailable} {
		if got := c.ModeLabel(); got != "Mouse Fallback Mode" {
			t.Errorf("%s label = %q", c, got)
		}
	}

	tests := []struct {
		hand bool
		g    gesture.Gesture
		want string
	}{
		{false, gesture.Heart, "Awaiting interaction..."},
		{true, gesture.None, "SEARCHING..."},
		{true, gesture.Fireworks, "FIREWORKS"},
	}
	for _, tt := range tests {
		if got := StatusText(tt.hand, tt.g); got != tt.want {
			t.Errorf("StatusText(%v, %s) = %q, want %q", tt.hand, tt.g, got, tt.want)
		}
	}
}
