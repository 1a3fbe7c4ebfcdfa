// Package webcam captures camera frames with OpenCV and runs an ONNX hand
// landmark model over them.
package webcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/pthm-cable/nebula/gesture"
)

// ErrCameraUnavailable is returned when the device cannot be opened or read.
var ErrCameraUnavailable = errors.New("camera unavailable")

// ErrModelUnavailable is returned when the landmark model cannot be loaded.
var ErrModelUnavailable = errors.New("landmark model unavailable")

// Config holds capture and model settings.
type Config struct {
	Device            int
	Width             int
	Height            int
	ModelPath         string  // ONNX hand landmark model
	InputSize         int     // square model input in pixels
	LandmarkOutput    string  // output layer with 21x3 landmarks in input pixels
	PresenceOutput    string  // output layer with the hand presence score
	PresenceThreshold float32 // below this the frame has no hand
}

// DefaultConfig returns settings for a 224px MediaPipe-style landmark model.
func DefaultConfig() Config {
	return Config{
		Device:            0,
		Width:             640,
		Height:            480,
		ModelPath:         "models/hand_landmark.onnx",
		InputSize:         224,
		LandmarkOutput:    "Identity",
		PresenceOutput:    "Identity_1",
		PresenceThreshold: 0.5,
	}
}

// Source reads the camera and returns one HandFrame per captured image.
type Source struct {
	cfg     Config
	capture *gocv.VideoCapture
	net     gocv.Net
	img     gocv.Mat
	outputs []string
	mu      sync.Mutex
}

// Open acquires the camera and loads the model. Any failure here means the
// session runs on mouse input.
func Open(cfg Config) (*Source, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: device %d not opened", ErrCameraUnavailable, cfg.Device)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		capture.Close()
		return nil, fmt.Errorf("%w: failed to load %s", ErrModelUnavailable, cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &Source{
		cfg:     cfg,
		capture: capture,
		net:     net,
		img:     gocv.NewMat(),
		outputs: []string{cfg.LandmarkOutput, cfg.PresenceOutput},
	}, nil
}

// Next captures one image and runs the landmark model on it.
func (s *Source) Next(ctx context.Context) (*gesture.HandFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok := s.capture.Read(&s.img); !ok {
		return nil, fmt.Errorf("%w: read failed", ErrCameraUnavailable)
	}
	if s.img.Empty() {
		return nil, nil
	}

	size := image.Pt(s.cfg.InputSize, s.cfg.InputSize)
	blob := gocv.BlobFromImage(s.img, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")
	outs := s.net.ForwardLayers(s.outputs)
	defer func() {
		for i := range outs {
			outs[i].Close()
		}
	}()
	if len(outs) != 2 {
		return nil, fmt.Errorf("expected 2 model outputs, got %d", len(outs))
	}

	presence, err := outs[1].DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("reading presence: %w", err)
	}
	if len(presence) == 0 || presence[0] < s.cfg.PresenceThreshold {
		return nil, nil
	}

	coords, err := outs[0].DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("reading landmarks: %w", err)
	}
	return decodeLandmarks(coords, float64(s.cfg.InputSize), float64(presence[0]))
}

// decodeLandmarks converts xyz triples in model input pixels to normalised
// landmarks. Depth uses the same scale as x.
func decodeLandmarks(coords []float32, inputSize, confidence float64) (*gesture.HandFrame, error) {
	n := len(coords) / 3
	if n < gesture.MinLandmarks {
		return nil, fmt.Errorf("%w: model returned %d", gesture.ErrTooFewLandmarks, n)
	}
	frame := &gesture.HandFrame{
		Landmarks:  make([]gesture.Landmark, n),
		Confidence: confidence,
	}
	for i := 0; i < n; i++ {
		frame.Landmarks[i] = gesture.Landmark{
			X: float64(coords[i*3]) / inputSize,
			Y: float64(coords[i*3+1]) / inputSize,
			Z: float64(coords[i*3+2]) / inputSize,
		}
	}
	return frame, nil
}

// Close releases the camera and the model.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img.Close()
	s.net.Close()
	return s.capture.Close()
}
