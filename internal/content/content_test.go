package content

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/1broseidon/halo/internal/platform"
	"github.com/1broseidon/halo/internal/shell"
)

type fakeNotifier struct {
	flashes []int
}

func (n *fakeNotifier) Flash(count int) {
	n.flashes = append(n.flashes, count)
}

func expandedView() shell.View {
	return shell.View{
		Size:      400,
		Radius:    200,
		MinRadius: 80,
		MaxRadius: 200,
		Expanded:  true,
		Settled:   true,
	}
}

func collapsedView() shell.View {
	v := expandedView()
	v.Radius = 80
	v.Expanded = false
	return v
}

func renderFrame(c *TimerContent, view shell.View) {
	img := image.NewRGBA(image.Rect(0, 0, view.Size, view.Size))
	c.Render(img, view)
}

func TestCompletionFlashesOnce(t *testing.T) {
	start := time.Now()
	c := New(Options{Minutes: 1, Autostart: true, Background: color.RGBA{B: 255, A: 255}})
	n := &fakeNotifier{}
	c.SetNotifier(n)

	c.Tick(start.Add(30 * time.Second))
	if len(n.flashes) != 0 {
		t.Fatal("flashed before completion")
	}

	c.Tick(start.Add(2 * time.Minute))
	if len(n.flashes) != 1 || n.flashes[0] != completionFlashes {
		t.Fatalf("flashes = %v, want [%d]", n.flashes, completionFlashes)
	}

	c.Tick(start.Add(3 * time.Minute))
	if len(n.flashes) != 1 {
		t.Errorf("flashed again after completion: %v", n.flashes)
	}
}

func TestButtonsClickableWhenExpanded(t *testing.T) {
	c := New(Options{Minutes: 5, Background: color.RGBA{B: 255, A: 255}})
	renderFrame(c, expandedView())

	if len(c.buttons) != 4 {
		t.Fatalf("buttons = %d, want 4", len(c.buttons))
	}

	find := func(kind buttonKind) image.Point {
		t.Helper()
		for _, b := range c.buttons {
			if b.kind == kind {
				return b.rect.Min.Add(b.rect.Size().Div(2))
			}
		}
		t.Fatalf("button %d not laid out", kind)
		return image.Point{}
	}

	view := expandedView()
	if !c.TryHandleClick(find(btnUp), view) {
		t.Fatal("plus button did not consume the click")
	}
	if c.Timer().Remaining() != 360 {
		t.Errorf("remaining = %d, want 360", c.Timer().Remaining())
	}

	if !c.TryHandleClick(find(btnDown), view) {
		t.Fatal("minus button did not consume the click")
	}
	if c.Timer().Remaining() != 300 {
		t.Errorf("remaining = %d, want 300", c.Timer().Remaining())
	}

	if !c.TryHandleClick(find(btnStartStop), view) {
		t.Fatal("start button did not consume the click")
	}
	if !c.Timer().Running() {
		t.Error("start click did not start the countdown")
	}

	if !c.TryHandleClick(find(btnReset), view) {
		t.Fatal("reset button did not consume the click")
	}
	if c.Timer().Running() || c.Timer().Remaining() != ResetSeconds {
		t.Error("reset click did not reset the countdown")
	}

	// A click between buttons falls through to the shell.
	if c.TryHandleClick(image.Pt(200, 200), view) {
		t.Error("center click consumed with no button there")
	}
}

func TestClicksIgnoredWhenCollapsed(t *testing.T) {
	c := New(Options{Minutes: 5, Background: color.RGBA{B: 255, A: 255}})
	renderFrame(c, expandedView())
	renderFrame(c, collapsedView())

	if len(c.buttons) != 0 {
		t.Fatal("compact mode kept button rects")
	}
	if c.TryHandleClick(image.Pt(200, 280), collapsedView()) {
		t.Error("collapsed content consumed a click")
	}
}

func TestWheelAdjustsOnlyExpandedAndStopped(t *testing.T) {
	c := New(Options{Minutes: 5, Background: color.RGBA{B: 255, A: 255}})

	renderFrame(c, collapsedView())
	c.HandleWheel(true)
	if c.Timer().Remaining() != 300 {
		t.Error("wheel applied while collapsed")
	}

	renderFrame(c, expandedView())
	c.HandleWheel(true)
	c.HandleWheel(true)
	c.HandleWheel(false)
	if c.Timer().Remaining() != 360 {
		t.Errorf("remaining = %d, want 360", c.Timer().Remaining())
	}

	c.Timer().Start(time.Now())
	c.HandleWheel(true)
	if c.Timer().Remaining() != 360 {
		t.Error("wheel applied while running")
	}
}

func TestReturnKeyResetsWhenStopped(t *testing.T) {
	c := New(Options{Minutes: 20, Background: color.RGBA{B: 255, A: 255}})

	c.HandleKey(platform.KeyReturn)
	if c.Timer().Remaining() != ResetSeconds {
		t.Errorf("remaining = %d, want %d", c.Timer().Remaining(), ResetSeconds)
	}

	c.Timer().Set(20, time.Now())
	c.Timer().Start(time.Now())
	c.HandleKey(platform.KeyReturn)
	if c.Timer().Remaining() != 1200 {
		t.Error("Return reset a running countdown")
	}

	c.HandleKey(platform.KeyOther)
	if c.Timer().Remaining() != 1200 {
		t.Error("unrelated key mutated the countdown")
	}
}

func TestRenderPaintsDigits(t *testing.T) {
	bg := color.RGBA{B: 255, A: 255}
	c := New(Options{Minutes: 5, Background: bg, Description: "focus"})

	for _, view := range []shell.View{expandedView(), collapsedView()} {
		img := image.NewRGBA(image.Rect(0, 0, view.Size, view.Size))
		c.Render(img, view)

		white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		found := false
		for y := 0; y < view.Size && !found; y++ {
			for x := 0; x < view.Size; x++ {
				if img.RGBAAt(x, y) == white {
					found = true
					break
				}
			}
		}
		if !found {
			t.Errorf("expanded=%v: no digit pixels on dark background", view.Expanded)
		}
	}
}

func TestFinishedBackgroundOscillates(t *testing.T) {
	start := time.Now()
	c := New(Options{Minutes: 1, Autostart: true, Background: color.RGBA{B: 255, A: 255}})
	c.Tick(start.Add(2 * time.Minute))

	if !c.Timer().Finished() {
		t.Fatal("timer not finished")
	}

	// Sample the blend across a full oscillation; it must actually move.
	seen := map[color.RGBA]bool{}
	for i := 0; i < 32; i++ {
		c.now = start.Add(time.Duration(i) * 100 * time.Millisecond)
		seen[c.background()] = true
	}
	if len(seen) < 2 {
		t.Error("finished background does not oscillate")
	}
}
