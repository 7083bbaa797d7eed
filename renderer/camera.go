package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsnake/camera"
)

// Camera3D converts a chase camera to a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   ToRL(c.Position),
		Target:     ToRL(c.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}
