// Package renderer draws the particle cloud and its backdrop with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/systems"
)

// ParticleRenderer draws the cloud as additive coloured points.
type ParticleRenderer struct {
	// PointSize is the edge length of each point in world units.
	// At 1 or below points are drawn as single pixels.
	PointSize float32
	Alpha     uint8
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(pointSize float32) *ParticleRenderer {
	return &ParticleRenderer{PointSize: pointSize, Alpha: 204}
}

// Camera3D converts the view into a raylib camera. The clip planes are not
// part of rl.Camera3D; Draw applies them.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(0, 0, cam.Distance),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cam.FOVY,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders all particles rotated as a whole by rot.
func (r *ParticleRenderer) Draw(cloud *systems.Cloud, rot systems.Rotation, cam *camera.Camera) {
	rl.SetClipPlanes(float64(cam.Near), float64(cam.Far))
	rl.BeginMode3D(Camera3D(cam))
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.PushMatrix()
	rl.Rotatef(rot.X*rl.Rad2deg, 1, 0, 0)
	rl.Rotatef(rot.Y*rl.Rad2deg, 0, 1, 0)

	pos, col := cloud.Positions, cloud.Colors
	size := rl.NewVector3(r.PointSize, r.PointSize, r.PointSize)
	for j := 0; j+2 < len(pos); j += 3 {
		p := rl.NewVector3(pos[j], pos[j+1], pos[j+2])
		c := rl.Color{
			R: uint8(col[j] * 255),
			G: uint8(col[j+1] * 255),
			B: uint8(col[j+2] * 255),
			A: r.Alpha,
		}
		if r.PointSize > 1 {
			rl.DrawCubeV(p, size, c)
		} else {
			rl.DrawPoint3D(p, c)
		}
	}

	rl.PopMatrix()
	rl.EndBlendMode()
	rl.EndMode3D()
}
