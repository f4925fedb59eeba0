// Package render provides the small software-rendering toolkit the
// overlay draws with: filled circles, stroked arcs, and bitmap text.
package render

import (
	"image/color"
	"image/draw"
	"math"
)

// Fill paints the whole image with a single color.
func Fill(dst draw.Image, c color.Color) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// FillCircle draws a filled circle centered at (cx, cy).
func FillCircle(dst draw.Image, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		sq := r*r - dy*dy
		if sq <= 0 {
			continue
		}
		half := math.Sqrt(sq)
		x0 := int(math.Floor(cx - half))
		x1 := int(math.Ceil(cx + half))
		if x0 < b.Min.X {
			x0 = b.Min.X
		}
		if x1 > b.Max.X {
			x1 = b.Max.X
		}
		for x := x0; x < x1; x++ {
			dst.Set(x, y, c)
		}
	}
}

// FillRect draws a filled axis-aligned rectangle.
func FillRect(dst draw.Image, x, y, w, h int, c color.Color) {
	b := dst.Bounds()
	for yy := y; yy < y+h; yy++ {
		if yy < b.Min.Y || yy >= b.Max.Y {
			continue
		}
		for xx := x; xx < x+w; xx++ {
			if xx < b.Min.X || xx >= b.Max.X {
				continue
			}
			dst.Set(xx, yy, c)
		}
	}
}

// StrokeArc draws a circular arc of the given radius centered at
// (cx, cy). Angles are in degrees: 0 points right, -90 points up, and
// positive sweep runs clockwise on screen. The stroke is sampled every
// two degrees and stamped with round caps.
func StrokeArc(dst draw.Image, cx, cy, r float64, startDeg, sweepDeg, width float64, c color.Color) {
	if r <= 0 || sweepDeg <= 0 || width <= 0 {
		return
	}

	half := width / 2
	const stepDeg = 2.0

	prevX, prevY := arcPoint(cx, cy, r, startDeg)
	FillCircle(dst, prevX, prevY, half, c)

	for deg := stepDeg; deg <= sweepDeg+stepDeg/2; deg += stepDeg {
		d := deg
		if d > sweepDeg {
			d = sweepDeg
		}
		x, y := arcPoint(cx, cy, r, startDeg+d)
		stampSegment(dst, prevX, prevY, x, y, half, c)
		prevX, prevY = x, y
	}
}

func arcPoint(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// stampSegment draws a thick line segment by stamping discs at
// sub-pixel intervals.
func stampSegment(dst draw.Image, x0, y0, x1, y1, half float64, c color.Color) {
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Hypot(dx, dy)
	steps := int(math.Ceil(dist))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		FillCircle(dst, x0+dx*t, y0+dy*t, half, c)
	}
}

// Brightness returns the perceived luma of a color on a 0-255 scale.
func Brightness(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}

// ContrastColor picks black or white, whichever reads better on bg.
func ContrastColor(bg color.Color) color.Color {
	if Brightness(bg) > 128 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Shade lightens (positive delta) or darkens (negative delta) a color.
func Shade(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(c.R) + delta),
		G: clampChannel(int(c.G) + delta),
		B: clampChannel(int(c.B) + delta),
		A: c.A,
	}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
