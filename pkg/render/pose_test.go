package render

import (
	"math"
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

func approxEqVec3(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestPoseUpdateAttitudeNoneIsNoOp(t *testing.T) {
	p := NewPose()
	before := p
	p.UpdateAttitude()
	if p != before {
		t.Fatalf("UpdateAttitude with no action bits changed the pose: %+v -> %+v", before, p)
	}
}

func TestPoseMoveForward(t *testing.T) {
	p := NewPose()
	p.G = math3d.V3(0, 0, -1)
	p.Speed = 2
	p.SetAction(ActionMoveForward, true)
	p.UpdateAttitude()

	want := math3d.V3(0, 0, -2)
	if !approxEqVec3(p.WPos, want, 1e-9) {
		t.Fatalf("WPos = %v, want %v", p.WPos, want)
	}
}

func TestPoseMoveIgnoresPitch(t *testing.T) {
	// G tilted upward; horizontal forward should flatten to the XZ plane.
	p := NewPose()
	p.G = math3d.V3(0, 1, -1).Normalize()
	p.Speed = 1
	p.SetAction(ActionMoveForward, true)
	p.UpdateAttitude()

	if p.WPos.Y != 0 {
		t.Fatalf("WPos.Y = %v, want 0 (horizontal move shouldn't change altitude)", p.WPos.Y)
	}
}

func TestPoseTurnLeftYawsAboutWorldUp(t *testing.T) {
	p := NewPose()
	p.G = math3d.V3(0, 0, -1)
	p.Up = math3d.V3(0, 1, 0)
	p.RSpeed = math.Pi / 2
	p.SetAction(ActionTurnLeft, true)
	p.UpdateAttitude()

	if math.Abs(p.G.Y) > 1e-6 {
		t.Fatalf("G.Y = %v after yaw, want 0 (yaw is about world up)", p.G.Y)
	}
	if !approxEqVec3(p.Up, math3d.V3(0, 1, 0), 1e-6) {
		t.Fatalf("Up changed during yaw: %v", p.Up)
	}
}

func TestPoseTurnUpPitchesAboutGCrossUp(t *testing.T) {
	p := NewPose()
	p.G = math3d.V3(0, 0, -1)
	p.Up = math3d.V3(0, 1, 0)
	p.RSpeed = 0.3
	p.SetAction(ActionTurnUp, true)
	p.UpdateAttitude()

	if math.Abs(p.G.Len()-1) > 1e-6 {
		t.Fatalf("|G| = %v after pitch, want 1", p.G.Len())
	}
	if math.Abs(p.Up.Len()-1) > 1e-6 {
		t.Fatalf("|Up| = %v after pitch, want 1", p.Up.Len())
	}
	// Pitching up should tilt G toward +Y.
	if p.G.Y <= 0 {
		t.Fatalf("G.Y = %v after turning up, want > 0", p.G.Y)
	}
}

func TestPoseSetAction(t *testing.T) {
	p := NewPose()
	p.SetAction(ActionMoveForward, true)
	if p.State&ActionMoveForward == 0 {
		t.Fatal("ActionMoveForward bit not set")
	}
	p.SetAction(ActionMoveForward, false)
	if p.State&ActionMoveForward != 0 {
		t.Fatal("ActionMoveForward bit not cleared")
	}
}
