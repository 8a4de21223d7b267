package render

import "github.com/taigrr/raster3d/pkg/math3d"

// ModelPose is a Pose that also produces the model matrix placing a mesh
// in world space: translation by WPos composed with a rotation whose
// columns are (G×Up, Up, -G).
type ModelPose struct {
	Pose
}

// NewModelPose returns a ModelPose at the origin with identity orientation.
func NewModelPose() *ModelPose {
	p := NewPose()
	return &ModelPose{Pose: p}
}

// ModelMatrix returns translate(WPos) * rotation(G×Up, Up, -G).
func (m *ModelPose) ModelMatrix() math3d.Mat4 {
	gxup := m.G.Cross(m.Up)
	rotation := math3d.Mat4{
		gxup.X, gxup.Y, gxup.Z, 0,
		m.Up.X, m.Up.Y, m.Up.Z, 0,
		-m.G.X, -m.G.Y, -m.G.Z, 0,
		0, 0, 0, 1,
	}
	return math3d.Translate(m.WPos).Mul(rotation)
}
