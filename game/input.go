package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
)

// shapeKeys maps number keys to shapes, in selector order.
var shapeKeys = [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if !g.session.Running() {
		return
	}

	if rl.IsKeyPressed(rl.KeyG) {
		g.hud.GuideOpen = !g.hud.GuideOpen
	}

	all := shapes.All()
	for i, key := range shapeKeys {
		if i < len(all) && rl.IsKeyPressed(key) {
			g.Select(all[i])
		}
	}
}

// pointer reads the mouse in world units. While the guide is open the
// button is ignored so clicks on it do not pull particles.
func (g *Game) pointer() interaction.Pointer {
	pos := rl.GetMousePosition()
	x, y := g.camera.PointerToWorld(pos.X, pos.Y)
	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if g.hud != nil && g.hud.GuideOpen {
		down = false
	}
	return interaction.Pointer{X: x, Y: y, Down: down}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
	if g.background != nil {
		g.background.Resize(int32(w), int32(h))
	}
}
