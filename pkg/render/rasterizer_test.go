package render

import (
	"sync"
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

func ndcTriangle(w0, w1, w2 float64) Triangle {
	return Triangle{V: [3]Vertex{
		{WPos: math3d.V3(0, 0, 0), CPos: math3d.V4(-0.5, -0.5, 0, w0), WNormal: math3d.V3(0, 0, 1)},
		{WPos: math3d.V3(1, 0, 0), CPos: math3d.V4(0.5, -0.5, 0, w1), WNormal: math3d.V3(0, 0, 1)},
		{WPos: math3d.V3(0, 1, 0), CPos: math3d.V4(0, 0.5, 0, w2), WNormal: math3d.V3(0, 0, 1)},
	}}
}

func rasterize(t Triangle, width, height int, cull bool) []Fragment {
	depth := NewDepthBuffer(width, height)
	var frags []Fragment
	var mu sync.Mutex
	staging := NewStagingBuffer(depth, &frags, &mu)
	RasterizeTriangle(t, width, height, cull, staging)
	staging.Close()
	return frags
}

func TestRasterizeTriangleProducesFragmentsInsideBounds(t *testing.T) {
	tri := ndcTriangle(-1, -1, -1)
	frags := rasterize(tri, 32, 32, false)
	if len(frags) == 0 {
		t.Fatal("expected at least one fragment for a triangle covering the viewport center")
	}
	for _, f := range frags {
		if f.PID < 0 || f.PID >= 32*32 {
			t.Fatalf("fragment PID %d out of bounds", f.PID)
		}
	}
}

func TestRasterizeTriangleDegenerateProducesNothing(t *testing.T) {
	tri := Triangle{V: [3]Vertex{
		{CPos: math3d.V4(0, 0, 0, -1)},
		{CPos: math3d.V4(0, 0, 0, -1)},
		{CPos: math3d.V4(0, 0, 0, -1)},
	}}
	frags := rasterize(tri, 16, 16, false)
	if len(frags) != 0 {
		t.Fatalf("expected no fragments from a zero-area triangle, got %d", len(frags))
	}
}

func TestRasterizeTriangleBackfaceCulling(t *testing.T) {
	ccw := ndcTriangle(-1, -1, -1)
	cw := Triangle{V: [3]Vertex{ccw.V[0], ccw.V[2], ccw.V[1]}}

	if frags := rasterize(ccw, 32, 32, true); len(frags) == 0 {
		t.Fatal("expected a front-facing (CCW) triangle to survive culling")
	}
	if frags := rasterize(cw, 32, 32, true); len(frags) != 0 {
		t.Fatalf("expected a back-facing (CW) triangle to be culled, got %d fragments", len(frags))
	}
}

func TestRasterizeTriangleWithoutCullingDrawsBothWindings(t *testing.T) {
	ccw := ndcTriangle(-1, -1, -1)
	cw := Triangle{V: [3]Vertex{ccw.V[0], ccw.V[2], ccw.V[1]}}

	if frags := rasterize(cw, 32, 32, false); len(frags) == 0 {
		t.Fatal("expected a back-facing triangle to still rasterize when culling is off")
	}
}

func TestRasterizeTrianglePerspectiveCorrectInterpolation(t *testing.T) {
	// Vary the world position linearly, but give vertices different w so a
	// naive screen-space lerp (ignoring perspective) would disagree with
	// the perspective-correct interpolation at the centroid.
	tri := Triangle{V: [3]Vertex{
		{WPos: math3d.V3(0, 0, 0), CPos: math3d.V4(-1, -1, 0, -1)},
		{WPos: math3d.V3(10, 0, 0), CPos: math3d.V4(1, -1, 0, -3)},
		{WPos: math3d.V3(0, 10, 0), CPos: math3d.V4(-1, 1, 0, -1)},
	}}
	frags := rasterize(tri, 64, 64, false)
	if len(frags) == 0 {
		t.Fatal("expected fragments")
	}
	for _, f := range frags {
		if f.WPos.X < -1e-6 || f.WPos.Y < -1e-6 {
			t.Fatalf("interpolated world position out of expected range: %+v", f.WPos)
		}
	}
}

func TestRasterizeTriangleDepthIsReciprocalBlend(t *testing.T) {
	tri := ndcTriangle(-2, -2, -2)
	frags := rasterize(tri, 32, 32, false)
	for _, f := range frags {
		if f.Depth > -2+1e-6 || f.Depth < -2-1e-6 {
			t.Fatalf("uniform-depth triangle produced fragment depth %v, want -2", f.Depth)
		}
	}
}
