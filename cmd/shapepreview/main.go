// Shape preview tool - interactive particle cloud with parameter sliders.
//
// Usage: go run ./cmd/shapepreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/systems"
)

const (
	windowWidth  = 1200
	windowHeight = 760
	panelWidth   = 300
	previewWidth = windowWidth - panelWidth
)

// PreviewParams holds the slider values.
type PreviewParams struct {
	Count         int
	LerpSpeed     float32
	RotationSpeed float32
	ForceRadius   float32
	Attract       float32
	Repel         float32
	PointSize     float32
	Seed          int64
}

func defaultParams() PreviewParams {
	d := systems.DefaultParams()
	return PreviewParams{
		Count:         5000,
		LerpSpeed:     d.LerpSpeed,
		RotationSpeed: d.RotationSpeed,
		ForceRadius:   d.ForceRadius,
		Attract:       d.AttractFactor,
		Repel:         d.RepelFactor,
		PointSize:     2,
		Seed:          1,
	}
}

func buildSim(p PreviewParams, shape shapes.Archetype) *systems.Simulation {
	sp := systems.DefaultParams()
	sp.Count = p.Count
	sp.LerpSpeed = p.LerpSpeed
	sp.RotationSpeed = p.RotationSpeed
	sp.ForceRadius = p.ForceRadius
	sp.AttractFactor = p.Attract
	sp.RepelFactor = p.Repel
	return systems.NewSimulation(sp, shapes.NewGenerator(rand.New(rand.NewSource(p.Seed))), shape)
}

// slider draws a labelled slider and returns the new value.
func slider(x float32, y *float32, label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 90, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+panelWidth-80), int32(*y+2), 16, rl.LightGray)
	*y += 35
	return v
}

func main() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	shape := shapes.Sphere
	sim := buildSim(params, shape)
	defer func() { sim.Close() }()

	cam := camera.New(previewWidth, windowHeight)
	draw := renderer.NewParticleRenderer(params.PointSize)
	bg := renderer.NewBackgroundRenderer(previewWidth, windowHeight, 40, 20, 90)

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		in := interaction.State{Point: shapes.Vec3{X: 1e6}}
		if mouse.X < previewWidth {
			x, y := cam.PointerToWorld(mouse.X, mouse.Y)
			in = interaction.State{
				Point:  shapes.Vec3{X: x, Y: y},
				Active: rl.IsMouseButtonDown(rl.MouseButtonLeft),
			}
		}
		sim.Tick(rl.GetFrameTime(), in)

		rl.BeginDrawing()
		bg.Draw(0)
		draw.PointSize = params.PointSize
		draw.Draw(sim.Cloud(), sim.Rotation(), cam)

		rl.DrawRectangle(previewWidth, 0, panelWidth, windowHeight, rl.Color{R: 18, G: 18, B: 24, A: 255})
		rl.DrawText(fmt.Sprintf("%s | %d fps | spread %.1f", shape, rl.GetFPS(), sim.Spread()), 10, 10, 16, rl.LightGray)

		panelX := float32(previewWidth + 15)
		panelY := float32(10)
		rl.DrawText("Cloud Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		next := params
		next.Count = int(slider(panelX, &panelY, "Particles (rebuilds)", "%.0f", float32(params.Count), 100, 30000))
		next.LerpSpeed = slider(panelX, &panelY, "Lerp speed", "%.3f", params.LerpSpeed, 0.005, 0.3)
		next.RotationSpeed = slider(panelX, &panelY, "Rotation speed", "%.4f", params.RotationSpeed, 0, 0.02)
		next.ForceRadius = slider(panelX, &panelY, "Force radius", "%.0f", params.ForceRadius, 50, 600)
		next.Attract = slider(panelX, &panelY, "Attract", "%.3f", params.Attract, 0, 0.2)
		next.Repel = slider(panelX, &panelY, "Repel", "%.3f", params.Repel, -0.1, 0)
		next.PointSize = slider(panelX, &panelY, "Point size", "%.1f", params.PointSize, 1, 6)

		// Simulation params are fixed at construction; point size is not.
		rebuild := next.Count != params.Count || next.LerpSpeed != params.LerpSpeed ||
			next.RotationSpeed != params.RotationSpeed || next.ForceRadius != params.ForceRadius ||
			next.Attract != params.Attract || next.Repel != params.Repel
		params = next

		// Shape buttons
		for _, a := range shapes.All() {
			label := a.String()
			if a == shape {
				label = "> " + label + " <"
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 30, Height: 28}, label) {
				if sim.SetShape(a) {
					shape = a
				}
			}
			panelY += 34
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			rebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 140, Y: panelY, Width: 130, Height: 30}, "Reset All") {
			params = defaultParams()
			rebuild = true
		}
		panelY += 45

		yaml := fmt.Sprintf("particles:\n  lerp_speed: %.3f\n  rotation_speed: %.4f\nforce:\n  radius: %.0f\n  attract: %.3f\n  repel: %.3f\nscreen:\n  point_size: %.1f",
			params.LerpSpeed, params.RotationSpeed, params.ForceRadius, params.Attract, params.Repel, params.PointSize)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 22
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), windowHeight-30, 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()

		if rebuild {
			sim.Close()
			sim = buildSim(params, shape)
		}
	}
}
