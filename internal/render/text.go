package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// TextWidth returns the pixel width of s at scale 1.
func TextWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// TextHeight returns the pixel height of a text line at scale 1.
func TextHeight() int {
	return face.Height
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst draw.Image, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// DrawTextScaled draws s with its top-left corner at (x, y), scaling the
// bitmap font by an integer factor. The font is a bitmap face, so the
// mask is effectively binary and block scaling keeps edges crisp.
func DrawTextScaled(dst draw.Image, x, y int, s string, scale int, c color.Color) {
	if scale <= 1 {
		DrawText(dst, x, y, s, c)
		return
	}

	w := TextWidth(s)
	h := face.Height
	if w <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	b := dst.Bounds()
	for my := 0; my < h; my++ {
		for mx := 0; mx < w; mx++ {
			if mask.AlphaAt(mx, my).A < 128 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				yy := y + my*scale + sy
				if yy < b.Min.Y || yy >= b.Max.Y {
					continue
				}
				for sx := 0; sx < scale; sx++ {
					xx := x + mx*scale + sx
					if xx < b.Min.X || xx >= b.Max.X {
						continue
					}
					dst.Set(xx, yy, c)
				}
			}
		}
	}
}

// CenterTextX returns the x offset that centers s (at the given scale)
// around centerX.
func CenterTextX(s string, scale int, centerX int) int {
	if scale < 1 {
		scale = 1
	}
	return centerX - TextWidth(s)*scale/2
}
