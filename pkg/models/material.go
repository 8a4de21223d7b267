package models

import "github.com/taigrr/raster3d/pkg/math3d"

// Material holds the ambient/diffuse/specular reflectance coefficients the
// Blinn-Phong shader combines with light intensities.
type Material struct {
	Ka math3d.Vec3
	Kd math3d.Vec3
	Ks math3d.Vec3
}
