package shell

import (
	"testing"

	"github.com/1broseidon/halo/internal/platform"
)

func TestDragPreservesGrabOffset(t *testing.T) {
	backend := newFakeBackend()
	win, _ := backend.CreateWindow("halo", 400)
	backend.cursor = platform.Point{X: 130, Y: 150}

	d := NewDrag(backend, win)
	if err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !d.Active() {
		t.Fatal("drag not active after Begin")
	}

	// Window at (100,100), grabbed at (130,150): offset (30,50).
	backend.cursor = platform.Point{X: 500, Y: 300}
	if err := d.Track(); err != nil {
		t.Fatalf("Track: %v", err)
	}

	if len(backend.moves) != 1 {
		t.Fatalf("moves = %d, want 1", len(backend.moves))
	}
	got := backend.moves[0]
	want := platform.Point{X: 470, Y: 250}
	if got != want {
		t.Errorf("window moved to %+v, want %+v", got, want)
	}
}

func TestDragTracksAcrossMoves(t *testing.T) {
	backend := newFakeBackend()
	win, _ := backend.CreateWindow("halo", 400)
	backend.cursor = platform.Point{X: 100, Y: 100}

	d := NewDrag(backend, win)
	if err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	steps := []platform.Point{
		{X: 110, Y: 100},
		{X: 150, Y: 90},
		{X: 80, Y: 400},
	}
	for _, cur := range steps {
		backend.cursor = cur
		if err := d.Track(); err != nil {
			t.Fatalf("Track at %+v: %v", cur, err)
		}
	}

	if len(backend.moves) != len(steps) {
		t.Fatalf("moves = %d, want %d", len(backend.moves), len(steps))
	}
	// Offset was zero, so the window follows the cursor exactly.
	for i, cur := range steps {
		if backend.moves[i] != cur {
			t.Errorf("move %d = %+v, want %+v", i, backend.moves[i], cur)
		}
	}
}

func TestDragTrackInactiveIsNoop(t *testing.T) {
	backend := newFakeBackend()
	win, _ := backend.CreateWindow("halo", 400)

	d := NewDrag(backend, win)
	backend.cursor = platform.Point{X: 900, Y: 900}
	if err := d.Track(); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if len(backend.moves) != 0 {
		t.Errorf("inactive drag moved the window: %+v", backend.moves)
	}
}

func TestDragEnd(t *testing.T) {
	backend := newFakeBackend()
	win, _ := backend.CreateWindow("halo", 400)

	d := NewDrag(backend, win)
	if err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	d.End()

	if d.Active() {
		t.Error("drag still active after End")
	}
	backend.cursor = platform.Point{X: 42, Y: 42}
	if err := d.Track(); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if len(backend.moves) != 0 {
		t.Errorf("ended drag moved the window: %+v", backend.moves)
	}
}
