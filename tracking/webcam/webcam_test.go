package webcam

import (
	"errors"
	"testing"

	"github.com/pthm-cable/nebula/gesture"
)

func TestDecodeLandmarks(t *testing.T) {
	coords := make([]float32, gesture.MinLandmarks*3)
	for i := 0; i < gesture.MinLandmarks; i++ {
		coords[i*3] = 112
		coords[i*3+1] = 56
		coords[i*3+2] = -22.4
	}

	frame, err := decodeLandmarks(coords, 224, 0.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frame.Landmarks) != gesture.MinLandmarks {
		t.Fatalf("expected %d landmarks, got %d", gesture.MinLandmarks, len(frame.Landmarks))
	}
	lm := frame.Landmarks[gesture.IndexTip]
	if lm.X != 0.5 || lm.Y != 0.25 {
		t.Errorf("expected (0.5, 0.25), got (%f, %f)", lm.X, lm.Y)
	}
	if lm.Z > -0.099 || lm.Z < -0.101 {
		t.Errorf("expected z near -0.1, got %f", lm.Z)
	}
	if frame.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", frame.Confidence)
	}
}

func TestDecodeLandmarksShortOutput(t *testing.T) {
	_, err := decodeLandmarks(make([]float32, 30), 224, 1)
	if !errors.Is(err, gesture.ErrTooFewLandmarks) {
		t.Errorf("expected ErrTooFewLandmarks, got %v", err)
	}
}

func TestOpenMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = t.TempDir() + "/missing.onnx"
	_, err := Open(cfg)
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}
