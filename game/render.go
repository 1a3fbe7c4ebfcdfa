package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	if !g.session.Running() {
		g.background.Draw(0)
		g.particles.Draw(g.sim.Cloud(), g.sim.Rotation(), g.camera)
		if g.hud.DrawStartScreen(sw, sh) {
			g.Start()
		}
		return
	}

	g.background.Draw(float32(g.scene.Intensity()))
	g.particles.Draw(g.sim.Cloud(), g.sim.Rotation(), g.camera)

	smoothed := gesture.None
	if hand := g.scene.Hand(); hand != nil {
		smoothed = hand.Gesture
	}
	st := g.scene.State()
	var marker ui.Marker
	marker.X, marker.Y, marker.Visible = g.camera.WorldToScreen(g.sim.Rotation().Apply(st.Point))
	marker.Active = st.Active

	act := g.hud.Draw(ui.HUDData{
		ScreenWidth:  sw,
		ScreenHeight: sh,
		Camera:       g.session.Camera(),
		HandFound:    g.session.HandFound(),
		Gesture:      smoothed,
		Shape:        g.sim.Shape(),
		Source:       st.Source,
		Intensity:    g.scene.Intensity(),
		Particles:    g.sim.Count(),
		FPS:          rl.GetFPS(),
		Marker:       marker,
	})
	if act.Selected {
		g.Select(act.Select)
	}
	g.scene.Perf().RecordFrame()
}
