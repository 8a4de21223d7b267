package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// Surface is the pipeline's presentation target: a core pixel buffer at 2x
// the terminal row count, downsampled into half-block terminal cells by
// Present. Shading writes through DrawPixel; wireframe mode writes directly
// via DrawLine/ClipLine, bypassing the depth buffer entirely.
type Surface struct {
	fb *Framebuffer
}

// NewSurface creates a surface sized for a width x height terminal area.
func NewSurface(width, height int) *Surface {
	return &Surface{fb: NewFramebuffer(width, height*2)}
}

// Width returns the core pixel width, equal to the terminal column count.
func (s *Surface) Width() int { return s.fb.Width }

// Height returns the core pixel height, 2x the terminal row count.
func (s *Surface) Height() int { return s.fb.Height }

// Framebuffer exposes the underlying pixel buffer for callers that need
// direct access to the pixel data, such as tests inspecting a frame.
func (s *Surface) Framebuffer() *Framebuffer { return s.fb }

// Clear fills the surface with a solid color.
func (s *Surface) Clear(c Color) { s.fb.Clear(c) }

// DrawPixel writes rgb (each channel in [0, 1]) to the pixel identified by
// pid = y*Width + x, the same linear indexing the depth buffer and
// fragment list use.
func (s *Surface) DrawPixel(pid int, rgb math3d.Vec3) {
	x := pid % s.fb.Width
	y := pid / s.fb.Width
	s.fb.SetPixel(x, y, vecToColor(rgb))
}

// ClipLine clips the segment (x0,y0)-(x1,y1) to the surface bounds via
// Cohen-Sutherland, returning false if nothing survives.
func (s *Surface) ClipLine(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	return cohenSutherlandClip(x0, y0, x1, y1, 0, float64(s.fb.Width-1), 0, float64(s.fb.Height-1))
}

// DrawLine draws a Bresenham line directly into the surface, bypassing the
// depth buffer. Used by wireframe mode.
func (s *Surface) DrawLine(x0, y0, x1, y1 int, c Color) {
	s.fb.DrawLine(x0, y0, x1, y1, c)
}

func vecToColor(v math3d.Vec3) color.RGBA {
	return color.RGBA{
		R: toChannel(v.X),
		G: toChannel(v.Y),
		B: toChannel(v.Z),
		A: 255,
	}
}

func toChannel(c float64) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c * 255)
}

// Present converts the core pixel buffer to terminal cells and draws them
// into scr over area. Each terminal row packs two core pixel rows using the
// upper-half-block glyph: foreground the top row, background the bottom.
func (s *Surface) Present(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < s.fb.Width; col++ {
			topColor := s.fb.GetPixel(col, topY)
			botColor := s.fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface, mapping
// fully transparent to no color so the terminal's own background shows
// through.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience.
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorSky     = color.RGBA{135, 206, 235, 255}
	ColorGrass   = color.RGBA{34, 139, 34, 255}
	ColorRoad    = color.RGBA{64, 64, 64, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}
