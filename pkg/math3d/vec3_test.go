package math3d

import (
	"math"
	"testing"
)

func approxEqVec3(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -1, 2)

	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Dot(b); got != 1*4+2*-1+3*2 {
		t.Errorf("Dot = %v", got)
	}
	cross := V3(1, 0, 0).Cross(V3(0, 1, 0))
	if !approxEqVec3(cross, V3(0, 0, 1), 1e-9) {
		t.Errorf("Cross = %v, want (0,0,1)", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("|normalize(v)| = %v, want 1", v.Len())
	}
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Fatalf("normalize(zero) = %v, want zero", zero)
	}
}

func TestVec3RotateAroundFullTurn(t *testing.T) {
	v := V3(1, 0, 0)
	axis := V3(0, 1, 0)

	got := v.RotateAround(axis, 2*math.Pi)
	if !approxEqVec3(got, v, 1e-6) {
		t.Fatalf("full turn rotation = %v, want %v", got, v)
	}
}

func TestVec3RotateAroundQuarterTurn(t *testing.T) {
	// Rotating (1,0,0) by +90deg about (0,1,0) following the right-hand
	// rule (k x v) should land on (0,0,-1).
	v := V3(1, 0, 0)
	axis := V3(0, 1, 0)

	got := v.RotateAround(axis, math.Pi/2)
	want := V3(0, 0, -1)
	if !approxEqVec3(got, want, 1e-6) {
		t.Fatalf("quarter turn = %v, want %v", got, want)
	}
}

func TestVec3RotateAroundPreservesLength(t *testing.T) {
	v := V3(2, 3, -1)
	axis := V3(0, 0, 1)

	got := v.RotateAround(axis, 0.37)
	if math.Abs(got.Len()-v.Len()) > 1e-6 {
		t.Fatalf("|rotated| = %v, want %v", got.Len(), v.Len())
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, want float64
	}{
		{-10, 0},
		{-4, 0},
		{-2, 0.5},
		{0, 1},
		{5, 1},
	}
	for _, c := range cases {
		got := Clamp(c.v, -4, 0, 0, 1)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Clamp(%v, -4, 0, 0, 1) = %v, want %v", c.v, got, c.want)
		}
	}
}
