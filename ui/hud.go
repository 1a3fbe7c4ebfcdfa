// Package ui draws the heads-up display, shape selector, gesture guide and
// start screen.
package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	ScreenWidth  int32
	ScreenHeight int32
	Camera       interaction.CameraState
	HandFound    bool
	Gesture      gesture.Gesture // smoothed
	Shape        shapes.Archetype
	Source       interaction.Source
	Intensity    float64
	Particles    int
	FPS          int32
	Marker       Marker
}

// Marker is the interaction point projected onto the screen.
type Marker struct {
	X, Y    float32
	Visible bool
	Active  bool // attracting rather than repelling
}

// HUDAction reports what the user clicked this frame.
type HUDAction struct {
	Select   shapes.Archetype
	Selected bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer  *Renderer
	GuideOpen bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD and returns any shape the user picked.
// While the guide is open it swallows all other clicks.
func (h *HUD) Draw(d HUDData) HUDAction {
	var act HUDAction
	t := h.renderer.Theme
	pad := t.Padding

	// Header
	rl.DrawText("NEBULA_CONTROL.v1", pad, pad, t.TitleFontSize, t.Accent)
	dot := t.Warning
	if d.Camera == interaction.CameraEnabled {
		dot = rl.Green
	}
	rl.DrawCircle(pad+4, pad+t.TitleFontSize+12, 4, dot)
	rl.DrawText(strings.ToUpper(d.Camera.ModeLabel()), pad+14, pad+t.TitleFontSize+6, 10, t.DimColor)
	rl.DrawText(fmt.Sprintf("%d particles | %d fps | %s", d.Particles, d.FPS, d.Source),
		pad, pad+t.TitleFontSize+22, 10, t.DimColor)

	if m := d.Marker; m.Visible {
		c := rl.Fade(t.Accent, 0.5)
		if m.Active {
			rl.DrawCircleV(rl.Vector2{X: m.X, Y: m.Y}, 6, c)
		}
		rl.DrawCircleLinesV(rl.Vector2{X: m.X, Y: m.Y}, 14, c)
	}

	// Centre feedback
	cx, cy := d.ScreenWidth/2, d.ScreenHeight/2
	status := interaction.StatusText(d.HandFound, d.Gesture)
	if d.HandFound {
		h.renderer.DrawCentered("GESTURE_LOCK", cx, cy-50, 10, t.DimColor)
		h.renderer.DrawCentered(status, cx, cy-30, t.LockFontSize, rl.Fade(t.Accent, 0.4))
	} else {
		h.renderer.DrawCentered(status, cx, cy, t.FontSize, t.DimColor)
	}

	h.renderer.DrawBar(d.ScreenWidth-pad-160, pad, "INTENSITY", float32(d.Intensity), 140)

	if h.GuideOpen {
		if h.drawGuide(d.ScreenWidth, d.ScreenHeight) {
			h.GuideOpen = false
		}
		return act
	}

	if gui.Button(rl.Rectangle{X: float32(d.ScreenWidth - pad - 40), Y: float32(pad + 30), Width: 40, Height: 40}, "?") {
		h.GuideOpen = true
	}

	// Footer shape selector
	all := shapes.All()
	const bw, bh, gap = 110, 30, 8
	total := int32(len(all))*(bw+gap) - gap
	x := cx - total/2
	y := d.ScreenHeight - pad - 60
	h.renderer.DrawPanel(x-12, y-8, total+24, bh+16)
	for _, a := range all {
		label := strings.ToUpper(a.String())
		if a == d.Shape {
			label = "> " + label + " <"
		}
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: bw, Height: bh}, label) {
			act.Select = a
			act.Selected = true
		}
		x += bw + gap
	}
	h.renderer.DrawCentered("DRAG TO SWIRL - CLICK TO ATTRACT - GESTURES MORPH MATTER",
		cx, d.ScreenHeight-pad-16, 9, t.DimColor)

	return act
}

// drawGuide renders the gesture guide modal. Returns true when dismissed.
func (h *HUD) drawGuide(sw, sh int32) bool {
	t := h.renderer.Theme
	p := t.Padding
	rl.DrawRectangle(0, 0, sw, sh, rl.Fade(rl.Black, 0.8))

	const w, rowH = 420, 44
	height := int32(len(Guide))*rowH + 150
	x, y := sw/2-w/2, sh/2-height/2
	h.renderer.DrawPanel(x, y, w, height)

	rl.DrawText("GESTURE_GUIDE", x+p, y+p, t.TitleFontSize, t.LabelColor)
	row := y + p + t.TitleFontSize + 16
	for _, e := range Guide {
		rl.DrawText(e.Gesture, x+p, row, 10, t.DimColor)
		rl.DrawText(e.Shape, x+p, row+14, 16, t.Accent)
		dw := rl.MeasureText(e.Desc, t.FontSize)
		rl.DrawText(e.Desc, x+w-p-dw, row+10, t.FontSize, t.DimColor)
		row += rowH
	}

	closed := gui.Button(rl.Rectangle{X: float32(x + w - 40), Y: float32(y + 8), Width: 32, Height: 32}, "X")
	if gui.Button(rl.Rectangle{X: float32(x + p), Y: float32(row + 10), Width: float32(w - 2*p), Height: 44}, "START EXPLORING") {
		closed = true
	}
	return closed
}

// DrawStartScreen renders the title card. Returns true when the user enters.
func (h *HUD) DrawStartScreen(sw, sh int32) bool {
	t := h.renderer.Theme
	cx, cy := sw/2, sh/2

	rl.DrawCircleGradient(cx, cy-110, 48, rl.Fade(t.Accent, 0.3), rl.Fade(t.Accent, 0))
	h.renderer.DrawCentered("NEBULA_MATTER", cx, cy-40, 48, rl.White)
	h.renderer.DrawCentered("Synthesizing particle clouds from manual gesture data.", cx, cy+20, t.FontSize, t.DimColor)
	h.renderer.DrawCentered("Computer vision link required for full immersion.", cx, cy+36, t.FontSize, t.DimColor)

	entered := gui.Button(rl.Rectangle{X: float32(cx - 130), Y: float32(cy + 80), Width: 260, Height: 56}, "ENTER EXPERIENCE")
	return entered || rl.IsKeyPressed(rl.KeyEnter)
}
