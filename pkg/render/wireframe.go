package render

// Region codes for Cohen-Sutherland clipping, one bit per side of the
// viewport rectangle a point can be outside of.
const (
	csInside = 0
	csLeft   = 1
	csRight  = 2
	csBottom = 4
	csTop    = 8
)

// RasterizeWireframe projects a triangle's three vertices to screen space
// and draws its three edges into surf, clipping each against the viewport
// with Cohen-Sutherland before handing the surviving segment to Bresenham.
// Shading and the depth buffer are bypassed entirely: wireframe mode draws
// directly into the surface.
func RasterizeWireframe(t Triangle, surf *Surface, color Color) {
	width, height := surf.Width(), surf.Height()

	var x, y [3]float64
	for i, vtx := range t.V {
		x[i] = 0.5 * float64(width) * (vtx.CPos.X + 1)
		y[i] = 0.5 * float64(height) * (vtx.CPos.Y + 1)
	}

	edges := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
	for _, e := range edges {
		x0, y0, x1, y1, ok := surf.ClipLine(x[e[0]], y[e[0]], x[e[1]], y[e[1]])
		if !ok {
			continue
		}
		surf.DrawLine(int(x0), int(y0), int(x1), int(y1), color)
	}
}

// outCode classifies (x, y) against the axis-aligned rectangle
// [xMin,xMax]x[yMin,yMax] as a bitmask of csLeft/csRight/csBottom/csTop.
func outCode(x, y, xMin, xMax, yMin, yMax float64) int {
	code := csInside
	switch {
	case x < xMin:
		code |= csLeft
	case x > xMax:
		code |= csRight
	}
	switch {
	case y < yMin:
		code |= csBottom
	case y > yMax:
		code |= csTop
	}
	return code
}

// cohenSutherlandClip clips the segment (x0,y0)-(x1,y1) against the
// rectangle [xMin,xMax]x[yMin,yMax], returning the clipped endpoints and
// false if the segment lies entirely outside.
func cohenSutherlandClip(x0, y0, x1, y1, xMin, xMax, yMin, yMax float64) (float64, float64, float64, float64, bool) {
	c0 := outCode(x0, y0, xMin, xMax, yMin, yMax)
	c1 := outCode(x1, y1, xMin, xMax, yMin, yMax)

	for {
		if c0 == csInside && c1 == csInside {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		var x, y float64
		outside := c0
		if outside == 0 {
			outside = c1
		}

		switch {
		case outside&csTop != 0:
			x = x0 + (x1-x0)*(yMax-y0)/(y1-y0)
			y = yMax
		case outside&csBottom != 0:
			x = x0 + (x1-x0)*(yMin-y0)/(y1-y0)
			y = yMin
		case outside&csRight != 0:
			y = y0 + (y1-y0)*(xMax-x0)/(x1-x0)
			x = xMax
		case outside&csLeft != 0:
			y = y0 + (y1-y0)*(xMin-x0)/(x1-x0)
			x = xMin
		}

		if outside == c0 {
			x0, y0 = x, y
			c0 = outCode(x0, y0, xMin, xMax, yMin, yMax)
		} else {
			x1, y1 = x, y
			c1 = outCode(x1, y1, xMin, xMax, yMin, yMax)
		}
	}
}
