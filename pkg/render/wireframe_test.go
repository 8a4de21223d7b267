package render

import (
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

func TestCohenSutherlandClipFullyInside(t *testing.T) {
	x0, y0, x1, y1, ok := cohenSutherlandClip(2, 2, 8, 8, 0, 10, 0, 10)
	if !ok {
		t.Fatal("expected segment fully inside to survive")
	}
	if x0 != 2 || y0 != 2 || x1 != 8 || y1 != 8 {
		t.Fatalf("unexpected clip result: (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}
}

func TestCohenSutherlandClipFullyOutside(t *testing.T) {
	_, _, _, _, ok := cohenSutherlandClip(20, 20, 30, 30, 0, 10, 0, 10)
	if ok {
		t.Fatal("expected segment fully outside to be rejected")
	}
}

func TestCohenSutherlandClipPartial(t *testing.T) {
	x0, y0, x1, y1, ok := cohenSutherlandClip(-5, 5, 5, 5, 0, 10, 0, 10)
	if !ok {
		t.Fatal("expected partially-inside segment to survive clipped")
	}
	if x0 != 0 || y0 != 5 {
		t.Fatalf("expected clip to the left edge at (0,5), got (%v,%v)", x0, y0)
	}
	if x1 != 5 || y1 != 5 {
		t.Fatalf("unexpected far endpoint (%v,%v)", x1, y1)
	}
}

func TestCohenSutherlandClipDiagonalCorner(t *testing.T) {
	_, _, _, _, ok := cohenSutherlandClip(-5, -5, 15, 15, 0, 10, 0, 10)
	if !ok {
		t.Fatal("expected diagonal segment crossing the rectangle to survive")
	}
}

func TestRasterizeWireframeDrawsTriangleEdges(t *testing.T) {
	surf := NewSurface(20, 10)
	tri := Triangle{V: [3]Vertex{
		{CPos: math3d.V4(-0.5, -0.5, 0, -1)},
		{CPos: math3d.V4(0.5, -0.5, 0, -1)},
		{CPos: math3d.V4(0, 0.5, 0, -1)},
	}}

	RasterizeWireframe(tri, surf, ColorWhite)

	lit := 0
	for _, p := range surf.Framebuffer().Pixels {
		if p.R != 0 || p.G != 0 || p.B != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected wireframe to light at least one pixel")
	}
}
