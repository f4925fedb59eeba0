package render

import (
	"image"
	"image/color"
	"testing"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 200, A: 255}
)

func countColored(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Fill(img, red)
	if got := countColored(img, red); got != 64 {
		t.Errorf("filled pixels = %d, want 64", got)
	}
}

func TestFillCircleCoverage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	FillCircle(img, 50, 50, 20, white)

	// Center painted, corner untouched.
	if img.RGBAAt(50, 50) != white {
		t.Error("circle center not painted")
	}
	if img.RGBAAt(0, 0) == white {
		t.Error("far corner painted")
	}
	// Points just inside and just outside the radius on the x axis.
	if img.RGBAAt(68, 50) != white {
		t.Error("point inside radius not painted")
	}
	if img.RGBAAt(72, 50) == white {
		t.Error("point outside radius painted")
	}

	// Area close to pi*r^2.
	got := float64(countColored(img, white))
	want := 3.14159 * 20 * 20
	if got < want*0.9 || got > want*1.1 {
		t.Errorf("circle area = %.0f, want within 10%% of %.0f", got, want)
	}
}

func TestFillCircleSymmetry(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 61, 61))
	FillCircle(img, 30.5, 30.5, 25, white)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			mx, my := 60-x, 60-y
			if img.RGBAAt(x, y) != img.RGBAAt(mx, my) {
				t.Fatalf("asymmetry: (%d,%d) vs (%d,%d)", x, y, mx, my)
			}
		}
	}
}

func TestFillCircleClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Must not panic or write out of bounds.
	FillCircle(img, 0, 0, 30, white)
	FillCircle(img, -50, -50, 5, white)
	FillCircle(img, 5, 5, 0, white)
}

func TestFillRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	FillRect(img, 5, 5, 10, 4, red)

	if got := countColored(img, red); got != 40 {
		t.Errorf("painted pixels = %d, want 40", got)
	}
	if img.RGBAAt(5, 5) != red || img.RGBAAt(14, 8) != red {
		t.Error("corners of rect not painted")
	}
	if img.RGBAAt(15, 5) == red || img.RGBAAt(5, 9) == red {
		t.Error("pixels outside rect painted")
	}

	// Partially off-image rects clip instead of panicking.
	FillRect(img, 15, 15, 10, 10, red)
}

func TestStrokeArcQuarterSweep(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	// Quarter turn from straight up, clockwise: ends pointing right.
	StrokeArc(img, 100, 100, 60, -90, 90, 4, white)

	// Top of the circle is on the arc.
	if img.RGBAAt(100, 40) != white {
		t.Error("arc start (top) not painted")
	}
	// Right of the circle is the arc end.
	if img.RGBAAt(160, 100) != white {
		t.Error("arc end (right) not painted")
	}
	// Bottom and left are outside the sweep.
	if img.RGBAAt(100, 160) == white {
		t.Error("bottom painted outside a 90 degree sweep")
	}
	if img.RGBAAt(40, 100) == white {
		t.Error("left painted outside a 90 degree sweep")
	}
	// Interior untouched.
	if img.RGBAAt(100, 100) == white {
		t.Error("arc filled its interior")
	}
}

func TestStrokeArcFullSweep(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	StrokeArc(img, 100, 100, 60, -90, 360, 4, white)

	for _, p := range []image.Point{{100, 40}, {160, 100}, {100, 160}, {40, 100}} {
		if img.RGBAAt(p.X, p.Y) != white {
			t.Errorf("full sweep missing pixel at %v", p)
		}
	}
}

func TestStrokeArcDegenerate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	StrokeArc(img, 25, 25, 0, -90, 90, 4, white)
	StrokeArc(img, 25, 25, 10, -90, 0, 4, white)
	StrokeArc(img, 25, 25, 10, -90, 90, 0, white)
	if got := countColored(img, white); got != 0 {
		t.Errorf("degenerate arcs painted %d pixels", got)
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want float64
	}{
		{name: "black", c: color.RGBA{A: 255}, want: 0},
		{name: "white", c: color.RGBA{R: 255, G: 255, B: 255, A: 255}, want: 255},
		{name: "pure red", c: color.RGBA{R: 255, A: 255}, want: 0.299 * 255},
		{name: "pure green", c: color.RGBA{G: 255, A: 255}, want: 0.587 * 255},
		{name: "pure blue", c: color.RGBA{B: 255, A: 255}, want: 0.114 * 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Brightness(tt.c)
			if diff := got - tt.want; diff > 0.5 || diff < -0.5 {
				t.Errorf("Brightness = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestContrastColor(t *testing.T) {
	black := color.RGBA{A: 255}
	if got := ContrastColor(color.RGBA{R: 255, G: 255, B: 255, A: 255}); got != black {
		t.Errorf("contrast on white = %v, want black", got)
	}
	if got := ContrastColor(color.RGBA{B: 120, A: 255}); got != white {
		t.Errorf("contrast on dark blue = %v, want white", got)
	}
	// Default overlay blue is dark enough for white text.
	if got := ContrastColor(color.RGBA{G: 120, B: 255, A: 255}); got != white {
		t.Errorf("contrast on overlay blue = %v, want white", got)
	}
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 100, G: 200, B: 50, A: 255}

	light := Shade(c, 80)
	if light != (color.RGBA{R: 180, G: 255, B: 130, A: 255}) {
		t.Errorf("Shade(+80) = %v", light)
	}
	dark := Shade(c, -80)
	if dark != (color.RGBA{R: 20, G: 120, B: 0, A: 255}) {
		t.Errorf("Shade(-80) = %v", dark)
	}
}
