package render

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// screenVertex is a triangle vertex after perspective divide (XY only,
// CPos.W preserved) and viewport transform.
type screenVertex struct {
	x, y float64 // viewport pixel coordinates
	w    float64 // view-space Z, preserved across the divide
	v    Vertex  // WPos/WNormal source for interpolation
}

// RasterizeTriangle converts clip-space vertices to screen space, culls or
// skips degenerate triangles, and half-space rasterizes the rest, pushing
// surviving fragments into staging. width/height size the viewport.
func RasterizeTriangle(t Triangle, width, height int, backfaceCulling bool, staging *StagingBuffer) {
	var sv [3]screenVertex
	for i, vtx := range t.V {
		sv[i] = screenVertex{
			x: 0.5 * float64(width) * (vtx.CPos.X + 1),
			y: 0.5 * float64(height) * (vtx.CPos.Y + 1),
			w: vtx.CPos.W,
			v: vtx,
		}
	}

	area := (sv[0].x-sv[1].x)*(sv[1].y-sv[2].y) - (sv[1].x-sv[2].x)*(sv[0].y-sv[1].y)
	if area == 0 {
		return
	}
	if backfaceCulling && area < 0 {
		return
	}
	// Inside a clockwise (negative-area) triangle all three edge functions
	// are non-positive; flipping their sign lets one inside test serve both
	// windings.
	orient := 1.0
	if area < 0 {
		orient = -1
		area = -area
	}

	minX := clampInt(int(math.Floor(min3(sv[0].x, sv[1].x, sv[2].x))), 0, width-1)
	maxX := clampInt(int(math.Ceil(max3(sv[0].x, sv[1].x, sv[2].x))), 0, width-1)
	minY := clampInt(int(math.Floor(min3(sv[0].y, sv[1].y, sv[2].y))), 0, height-1)
	maxY := clampInt(int(math.Ceil(max3(sv[0].y, sv[1].y, sv[2].y))), 0, height-1)
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		met := false
		for x := minX; x <= maxX; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5

			s0 := orient * edgeFunc(sv[1], sv[2], fx, fy)
			s1 := orient * edgeFunc(sv[2], sv[0], fx, fy)
			s2 := orient * edgeFunc(sv[0], sv[1], fx, fy)

			if s0 < 0 || s1 < 0 || s2 < 0 {
				if met {
					break
				}
				continue
			}
			met = true

			// Each edge function is taken over the edge opposite the vertex
			// it weights: s0 (edge 1->2) weights vertex 0, and so on.
			alpha := s0 / area
			beta := s1 / area
			gamma := s2 / area

			z := 1 / (alpha/sv[0].w + beta/sv[1].w + gamma/sv[2].w)

			wPos := interpVec3(sv, alpha, beta, gamma, z, func(v Vertex) math3d.Vec3 { return v.WPos })
			wNormal := interpVec3(sv, alpha, beta, gamma, z, func(v Vertex) math3d.Vec3 { return v.WNormal })

			staging.Push(Fragment{
				PID:     y*width + x,
				Depth:   z,
				WPos:    wPos,
				WNormal: wNormal,
			})
		}
	}
}

// edgeFunc evaluates the half-space edge function for the directed edge
// a->b at point (x, y): non-negative when (x, y) is on the inside
// half-plane of a->b.
func edgeFunc(a, b screenVertex, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

// interpVec3 applies perspective-correct interpolation with precomputed Z
// to the attribute selected by get.
func interpVec3(sv [3]screenVertex, alpha, beta, gamma, z float64, get func(Vertex) math3d.Vec3) math3d.Vec3 {
	a0, a1, a2 := get(sv[0].v), get(sv[1].v), get(sv[2].v)
	w0, w1, w2 := sv[0].w, sv[1].w, sv[2].w

	return math3d.V3(
		z*(a0.X*alpha/w0+a1.X*beta/w1+a2.X*gamma/w2),
		z*(a0.Y*alpha/w0+a1.Y*beta/w1+a2.Y*gamma/w2),
		z*(a0.Z*alpha/w0+a1.Z*beta/w1+a2.Z*gamma/w2),
	)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
