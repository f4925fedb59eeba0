package shell

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/halo/internal/platform"
)

func newTestShell(t *testing.T) (*Shell, *fakeBackend, *stubContent) {
	t.Helper()
	backend := newFakeBackend()
	content := &stubContent{}
	s, err := New(backend, content, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	backend.foreground = s.win
	return s, backend, content
}

func TestNewDefaults(t *testing.T) {
	s, backend, _ := newTestShell(t)

	if backend.size != DefaultSize {
		t.Errorf("window size = %d, want %d", backend.size, DefaultSize)
	}
	if backend.regionSet == 0 {
		t.Error("window was never shaped")
	}
	if !backend.keySet {
		t.Error("color key was never armed")
	}
	if s.radius.Min != DefaultSize/5 || s.radius.Max != DefaultSize/2 {
		t.Errorf("radius bounds = [%.0f, %.0f], want [%d, %d]",
			s.radius.Min, s.radius.Max, DefaultSize/5, DefaultSize/2)
	}

	st := s.Status()
	if !st.Expanded || !st.Settled || st.Dragging || st.Gesture != "idle" {
		t.Errorf("initial status = %+v", st)
	}
}

func TestFramePipeline(t *testing.T) {
	s, backend, content := newTestShell(t)

	now := time.Now()
	running, err := s.Frame(now, 1.0/60)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !running {
		t.Fatal("first frame reported shutdown")
	}

	if len(content.ticks) != 1 {
		t.Errorf("content ticks = %d, want 1", len(content.ticks))
	}
	if content.renders != 1 {
		t.Errorf("content renders = %d, want 1", content.renders)
	}
	if backend.presents != 1 {
		t.Errorf("presents = %d, want 1", backend.presents)
	}
}

func TestFrameQuitEvent(t *testing.T) {
	s, backend, _ := newTestShell(t)

	backend.pending = []platform.Event{{Kind: platform.EventQuit}}
	running, err := s.Frame(time.Now(), 1.0/60)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if running {
		t.Fatal("quit event did not shut the overlay down")
	}
	if backend.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", backend.destroyed)
	}

	// Frames after shutdown stay down and touch nothing.
	running, err = s.Frame(time.Now(), 1.0/60)
	if err != nil || running {
		t.Errorf("post-close Frame = (%v, %v), want (false, nil)", running, err)
	}
	if backend.destroyed != 1 {
		t.Errorf("second close destroyed again: %d", backend.destroyed)
	}
}

func TestFrameCloseGesture(t *testing.T) {
	s, backend, _ := newTestShell(t)
	start := time.Now()

	backend.pending = []platform.Event{{Kind: platform.EventKeyDown, Key: platform.KeyEscape}}
	running, err := s.Frame(start, 1.0/60)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !running {
		t.Fatal("overlay closed before the hold completed")
	}
	if s.Status().Gesture != "holding" {
		t.Fatalf("gesture = %s, want holding", s.Status().Gesture)
	}

	running, err = s.Frame(start.Add(DefaultCloseHold), 1.0/60)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if running {
		t.Fatal("completed hold did not close the overlay")
	}
	if backend.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", backend.destroyed)
	}
}

func TestFrameDrawsHoldArcInRed(t *testing.T) {
	s, backend, _ := newTestShell(t)
	start := time.Now()

	backend.pending = []platform.Event{{Kind: platform.EventKeyDown, Key: platform.KeyEscape}}
	if _, err := s.Frame(start, 1.0/60); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if _, err := s.Frame(start.Add(DefaultCloseHold/2), 1.0/60); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	// The arc starts at the top of the circle: center (200,200), radius
	// 200-arcInset, so its first point lands on (200, 4).
	got := backend.surface.RGBAAt(200, 4)
	if got != arcColor {
		t.Errorf("arc pixel = %+v, want %+v", got, arcColor)
	}
}

func TestFrameFocusLossCollapses(t *testing.T) {
	s, backend, _ := newTestShell(t)

	backend.foreground = 999
	now := time.Now()
	elapsed := 1.0 / 60
	for i := 0; i < 600; i++ {
		now = now.Add(time.Second / 60)
		if _, err := s.Frame(now, elapsed); err != nil {
			t.Fatalf("Frame %d: %v", i, err)
		}
	}

	st := s.Status()
	if st.Expanded {
		t.Error("overlay still expanded after sustained focus loss")
	}
	if !st.Settled {
		t.Errorf("radius %.2f not settled at min %.0f", st.Radius, s.radius.Min)
	}
}

func TestFlash(t *testing.T) {
	s, backend, _ := newTestShell(t)

	s.Flash(5)
	if len(backend.flashes) != 1 || backend.flashes[0] != 5 {
		t.Fatalf("flashes = %v, want [5]", backend.flashes)
	}

	s.Close()
	s.Flash(1)
	if len(backend.flashes) != 1 {
		t.Errorf("flash after close reached the backend: %v", backend.flashes)
	}
}

func TestBackgroundDefault(t *testing.T) {
	s, _, _ := newTestShell(t)
	bg := s.Background()
	if bg.R != 0 || bg.G != 120 || bg.B != 255 {
		t.Errorf("default background = %+v, want (0,120,255)", bg)
	}
}
