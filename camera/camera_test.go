package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/nebula/shapes"
)

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestNew(t *testing.T) {
	cam := New(1280, 720)
	if cam.Distance != 600 || cam.FOVY != 75 || cam.Near != 1 || cam.Far != 3000 {
		t.Errorf("unexpected lens %+v", cam)
	}
	if !approx(cam.Aspect(), 1280.0/720.0, 1e-6) {
		t.Errorf("expected aspect 16:9, got %f", cam.Aspect())
	}
}

func TestPointerToWorld(t *testing.T) {
	cam := New(1280, 720)

	testCases := []struct {
		sx, sy float32
		wx, wy float32
	}{
		{640, 360, 0, 0},       // center
		{0, 0, -500, 500},      // top-left
		{1280, 720, 500, -500}, // bottom-right
		{960, 180, 250, 250},
	}
	for _, tc := range testCases {
		wx, wy := cam.PointerToWorld(tc.sx, tc.sy)
		if !approx(wx, tc.wx, 0.01) || !approx(wy, tc.wy, 0.01) {
			t.Errorf("PointerToWorld(%f, %f) = (%f, %f), want (%f, %f)",
				tc.sx, tc.sy, wx, wy, tc.wx, tc.wy)
		}
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 720)
	cam.Resize(800, 800)
	if wx, wy := cam.PointerToWorld(400, 400); wx != 0 || wy != 0 {
		t.Errorf("expected new centre to map to origin, got (%f, %f)", wx, wy)
	}
	if cam.Aspect() != 1 {
		t.Errorf("expected aspect 1, got %f", cam.Aspect())
	}

	cam.Resize(0, 100)
	if cam.ViewportW != 800 {
		t.Error("zero width should be ignored")
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)
	sx, sy, ok := cam.WorldToScreen(shapes.Vec3{})
	if !ok {
		t.Fatal("origin should be visible")
	}
	if !approx(sx, 640, 0.01) || !approx(sy, 360, 0.01) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// +y is up on screen
	_, sy, _ = cam.WorldToScreen(shapes.Vec3{Y: 100})
	if sy >= 360 {
		t.Errorf("expected point above centre, got sy=%f", sy)
	}
}

func TestWorldToScreenClip(t *testing.T) {
	cam := New(1280, 720)
	if _, _, ok := cam.WorldToScreen(shapes.Vec3{Z: 700}); ok {
		t.Error("point behind the eye should be clipped")
	}
	if _, _, ok := cam.WorldToScreen(shapes.Vec3{Z: -2500}); ok {
		t.Error("point past the far plane should be clipped")
	}
}
