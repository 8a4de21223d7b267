package render

import (
	"math"
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

func TestCameraViewMatrixIdentityAtOrigin(t *testing.T) {
	c := NewCamera()
	c.G = math3d.V3(0, 0, -1)
	c.Up = math3d.V3(0, 1, 0)
	c.WPos = math3d.Vec3{}

	v := c.ViewMatrix()
	p := v.MulVec3(math3d.V3(0, 0, -5))
	want := math3d.V3(0, 0, -5)
	if !approxEqVec3(p, want, 1e-9) {
		t.Fatalf("view * (0,0,-5) = %v, want %v", p, want)
	}
}

func TestCameraViewMatrixTranslation(t *testing.T) {
	c := NewCamera()
	c.G = math3d.V3(0, 0, -1)
	c.Up = math3d.V3(0, 1, 0)
	c.WPos = math3d.V3(1, 2, 3)

	v := c.ViewMatrix()
	origin := v.MulVec3(c.WPos)
	if !approxEqVec3(origin, math3d.Vec3{}, 1e-9) {
		t.Fatalf("view * WPos = %v, want origin", origin)
	}
}

func TestCameraProjectionLastRowIsViewZ(t *testing.T) {
	c := NewCamera()
	c.SetClipPlanes(-0.1, -50)
	proj := c.ProjectionMatrix()

	v := math3d.V4(3, -2, -7, 1)
	clip := proj.MulVec4(v)
	if math.Abs(clip.W-(-7)) > 1e-9 {
		t.Fatalf("clip.W = %v, want view-space Z (-7)", clip.W)
	}
}

func TestCameraProjectionCachesUntilInvalidated(t *testing.T) {
	c := NewCamera()
	p1 := c.ProjectionMatrix()
	p2 := c.ProjectionMatrix()
	if p1 != p2 {
		t.Fatal("ProjectionMatrix changed without invalidation")
	}
	c.SetFOV(1.0)
	p3 := c.ProjectionMatrix()
	if p1 == p3 {
		t.Fatal("ProjectionMatrix did not change after SetFOV")
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewCamera()
	c.WPos = math3d.V3(0, 0, 5)
	c.LookAt(math3d.Vec3{})

	if !approxEqVec3(c.G, math3d.V3(0, 0, -1), 1e-9) {
		t.Fatalf("G = %v, want (0,0,-1)", c.G)
	}
}
