package render

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
)

// specularExponent is the fixed Blinn-Phong shininess used for every
// material.
const specularExponent = 300

// PhongShader holds the per-frame state the fragment shader needs beyond a
// single fragment: the material, the light list, the ambient term, and the
// viewer position the specular half-vector is measured from.
type PhongShader struct {
	Material  models.Material
	Lights    []Light
	Ambient   math3d.Vec3
	ViewerPos math3d.Vec3
}

// Shade computes the Blinn-Phong color for one fragment: for each light,
// accumulate ambient + diffuse*max(0,N.L)/r^2 + specular*max(0,N.H)^300/r^2,
// then clamp the sum to [0, 1] per channel.
func (s PhongShader) Shade(f Fragment) math3d.Vec3 {
	v := s.ViewerPos.Sub(f.WPos).Normalize()

	var ambient, diffuse, specular math3d.Vec3
	for _, light := range s.Lights {
		l := light.WPos.Sub(f.WPos)
		r2 := l.Dot(l)
		if r2 == 0 {
			continue
		}
		lHat := l.Normalize()
		hHat := lHat.Add(v).Normalize()

		ambient = ambient.Add(s.Material.Ka.Mul(s.Ambient))
		diffuse = diffuse.Add(s.Material.Kd.Mul(light.Intensity).Scale(math.Max(0, f.WNormal.Dot(lHat)) / r2))
		specular = specular.Add(s.Material.Ks.Mul(light.Intensity).Scale(math.Pow(math.Max(0, f.WNormal.Dot(hHat)), specularExponent) / r2))
	}

	return clampVec3(ambient.Add(diffuse).Add(specular), 0, 1)
}

// DepthShade renders a grayscale visualization of a fragment's view-space
// depth, remapping [-4, 0] to [0, 1].
func DepthShade(depth float64) math3d.Vec3 {
	v := math3d.Clamp(depth, -4, 0, 0, 1)
	return math3d.V3(v, v, v)
}

func clampVec3(v math3d.Vec3, lo, hi float64) math3d.Vec3 {
	return math3d.V3(
		math3d.Clamp(v.X, lo, hi, lo, hi),
		math3d.Clamp(v.Y, lo, hi, lo, hi),
		math3d.Clamp(v.Z, lo, hi, lo, hi),
	)
}
