package render

import "github.com/taigrr/raster3d/pkg/math3d"

// Vertex is the pipeline-internal per-vertex state produced by the vertex
// transform stage and consumed by clipping and rasterization. CPos.W
// carries view-space Z, not a homogeneous clip W.
type Vertex struct {
	WPos    math3d.Vec3
	CPos    math3d.Vec4
	WNormal math3d.Vec3
}

// Triangle is three transformed vertices awaiting clip/rasterize.
type Triangle struct {
	V [3]Vertex
}

// Fragment is a single shading candidate produced by the rasterizer and
// merged into the depth buffer by the staging buffer.
type Fragment struct {
	PID     int
	Depth   float64
	WPos    math3d.Vec3
	WNormal math3d.Vec3
}

// Light is a point light: a world position and an RGB intensity.
type Light struct {
	WPos      math3d.Vec3
	Intensity math3d.Vec3
}

// Mode selects exactly one shading behavior for a frame.
type Mode int

const (
	// PhongShading runs the Blinn-Phong fragment shader.
	PhongShading Mode = iota
	// ZColoring renders a grayscale visualization of view-space depth.
	ZColoring
	// Wireframe renders triangle edges only, bypassing rasterization and
	// shading entirely.
	Wireframe
)
