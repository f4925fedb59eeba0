package shell

import (
	"image"
	"image/draw"
	"time"

	"github.com/1broseidon/halo/internal/platform"
)

// fakeBackend is an in-memory platform.Backend for exercising the shell
// without a display server.
type fakeBackend struct {
	nextID     platform.WindowID
	foreground platform.WindowID
	fgErr      error
	cursor     platform.Point
	rect       platform.Rect
	moves      []platform.Point
	moveErr    error
	flashes    []int
	activates  int
	pending    []platform.Event
	surface    *image.RGBA
	presents   int
	destroyed  int
	size       int
	regionSet  int
	keySet     bool
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 7}
}

func (b *fakeBackend) CreateWindow(title string, size int) (platform.WindowID, error) {
	b.size = size
	b.surface = image.NewRGBA(image.Rect(0, 0, size, size))
	b.rect = platform.Rect{X: 100, Y: 100, Width: size, Height: size}
	return b.nextID, nil
}

func (b *fakeBackend) SetCircularRegion(id platform.WindowID, diameter int) error {
	b.regionSet++
	return nil
}

func (b *fakeBackend) SetColorKey(id platform.WindowID, key platform.RGB) error {
	b.keySet = true
	return nil
}

func (b *fakeBackend) RaiseAndCenter(id platform.WindowID) error {
	b.foreground = id
	return nil
}

func (b *fakeBackend) Activate(id platform.WindowID) error {
	b.activates++
	b.foreground = id
	return nil
}

func (b *fakeBackend) SetWindowPosition(id platform.WindowID, x, y int) error {
	if b.moveErr != nil {
		return b.moveErr
	}
	b.moves = append(b.moves, platform.Point{X: x, Y: y})
	b.rect.X = x
	b.rect.Y = y
	return nil
}

func (b *fakeBackend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	return b.rect, nil
}

func (b *fakeBackend) CursorPosition() (platform.Point, error) {
	return b.cursor, nil
}

func (b *fakeBackend) ForegroundWindow() (platform.WindowID, error) {
	if b.fgErr != nil {
		return 0, b.fgErr
	}
	return b.foreground, nil
}

func (b *fakeBackend) FlashTaskbar(id platform.WindowID, count int) error {
	b.flashes = append(b.flashes, count)
	return nil
}

func (b *fakeBackend) PollEvents(id platform.WindowID) ([]platform.Event, error) {
	events := b.pending
	b.pending = nil
	return events, nil
}

func (b *fakeBackend) Surface(id platform.WindowID) (draw.Image, error) {
	return b.surface, nil
}

func (b *fakeBackend) Present(id platform.WindowID) error {
	b.presents++
	return nil
}

func (b *fakeBackend) DestroyWindow(id platform.WindowID) error {
	b.destroyed++
	return nil
}

func (b *fakeBackend) Close() {}

// stubContent records interactions from the shell.
type stubContent struct {
	consumeClick bool
	clicks       []image.Point
	wheels       []bool
	keys         []platform.Key
	ticks        []time.Time
	renders      int
}

func (c *stubContent) HandleKey(key platform.Key) {
	c.keys = append(c.keys, key)
}

func (c *stubContent) Render(dst draw.Image, view View) {
	c.renders++
}

func (c *stubContent) TryHandleClick(pos image.Point, view View) bool {
	c.clicks = append(c.clicks, pos)
	return c.consumeClick
}

func (c *stubContent) HandleWheel(up bool) {
	c.wheels = append(c.wheels, up)
}

func (c *stubContent) Tick(now time.Time) {
	c.ticks = append(c.ticks, now)
}
