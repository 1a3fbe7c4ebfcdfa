package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer draws a soft radial glow behind the cloud.
type BackgroundRenderer struct {
	screenW, screenH float32
	inner, outer     rl.Color
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		inner:   rl.Color{R: baseR, G: baseG, B: baseB, A: 60},
		outer:   rl.Color{R: baseR, G: baseG, B: baseB, A: 0},
	}
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(w, h int32) {
	b.screenW = float32(w)
	b.screenH = float32(h)
}

// Draw clears to black and paints the glow. pulse in [0,1] widens it.
func (b *BackgroundRenderer) Draw(pulse float32) {
	rl.ClearBackground(rl.Black)
	radius := b.screenH * (0.45 + 0.1*pulse)
	rl.DrawCircleGradient(int32(b.screenW/2), int32(b.screenH/2), radius, b.inner, b.outer)
}
