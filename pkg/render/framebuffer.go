// Package render implements the rasterizer pipeline: coordinate transforms,
// near-plane clipping, half-space rasterization, the worker-pool staging
// buffer, Blinn-Phong/depth/wireframe shading, and the terminal
// presentation surface.
package render

import "image/color"

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clearDepth is the sentinel a cleared depth buffer cell holds: more
// negative than any reachable view-space Z, so the first write at a pixel
// always passes the "> depthBuf[pid]" closer-wins test.
const clearDepth = -1e8

// DepthBuffer holds one view-space-Z value per pixel. Larger (less
// negative) values are closer to the camera, matching the pipeline's
// view-space-Z depth convention.
type DepthBuffer struct {
	Width, Height int
	Values        []float64
}

// NewDepthBuffer creates a depth buffer already cleared to clearDepth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{Width: width, Height: height, Values: make([]float64, width*height)}
	d.Clear()
	return d
}

// Clear resets every cell to clearDepth.
func (d *DepthBuffer) Clear() {
	for i := range d.Values {
		d.Values[i] = clearDepth
	}
}

// ClearRange resets cells [from, to) to clearDepth, for partitioning across
// worker pool tasks.
func (d *DepthBuffer) ClearRange(from, to int) {
	for i := from; i < to; i++ {
		d.Values[i] = clearDepth
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
