package render

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// Camera is a Pose with the asymmetric perspective frustum parameters
// needed to build the projection and view matrices each frame. ZNear and
// ZFar are both negative, matching the view-space-Z convention carried
// through the rest of the pipeline.
type Camera struct {
	Pose

	FOV    float64 // vertical field of view, radians
	Aspect float64 // width / height
	ZNear  float64 // negative
	ZFar   float64 // negative

	projDirty bool
	proj      math3d.Mat4
}

// NewCamera returns a camera at the origin looking down -Z with sensible
// defaults.
func NewCamera() *Camera {
	return &Camera{
		Pose:      NewPose(),
		FOV:       math.Pi / 2,
		Aspect:    16.0 / 9.0,
		ZNear:     -0.1,
		ZFar:      -50,
		projDirty: true,
	}
}

// SetFOV sets the vertical field of view in radians and invalidates the
// cached projection matrix.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets width/height and invalidates the cached projection
// matrix.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.Aspect = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near/far planes (both negative) and invalidates
// the cached projection matrix.
func (c *Camera) SetClipPlanes(zNear, zFar float64) {
	c.ZNear = zNear
	c.ZFar = zFar
	c.projDirty = true
}

// SetPosition sets the camera's world position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.WPos = pos
}

// LookAt orients G/Up so the camera faces target from its current
// position, keeping worldUp as the reference up vector.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.G = target.Sub(c.WPos).Normalize()
	right := c.G.Cross(worldUp)
	c.Up = right.Cross(c.G).Normalize()
}

// ProjectionMatrix returns the asymmetric perspective frustum matrix built
// from FOV/Aspect/ZNear/ZFar.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if !c.projDirty {
		return c.proj
	}

	n, f := c.ZNear, c.ZFar
	t := math.Abs(n) * math.Tan(c.FOV/2)
	b := -t
	r := t * c.Aspect
	l := -r

	c.proj = math3d.Mat4{
		2 * n / (r - l), 0, 0, 0,
		0, 2 * n / (t - b), 0, 0,
		(r + l) / (r - l), (t + b) / (t - b), (f + n) / (n - f), 1,
		0, 0, 2 * f * n / (n - f), 0,
	}
	c.projDirty = false
	return c.proj
}

// ViewMatrix returns the view matrix: rotation rows (G×Up, Up, -G) composed
// with a translation of -WPos, mapping world space into the camera's local
// frame.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	gxup := c.G.Cross(c.Up)
	return math3d.Mat4{
		gxup.X, c.Up.X, -c.G.X, 0,
		gxup.Y, c.Up.Y, -c.G.Y, 0,
		gxup.Z, c.Up.Z, -c.G.Z, 0,
		-gxup.Dot(c.WPos), -c.Up.Dot(c.WPos), c.G.Dot(c.WPos), 1,
	}
}

// ViewProjectionMatrix returns ProjectionMatrix() * ViewMatrix().
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
