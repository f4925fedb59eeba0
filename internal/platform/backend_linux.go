//go:build linux

package platform

import (
	"fmt"
	"image/draw"

	"github.com/1broseidon/halo/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	keysymEscape  = 0xff1b
	keysymReturn  = 0xff0d
	keysymKPEnter = 0xff8d
)

// LinuxBackend implements Backend on top of an X11 connection.
type LinuxBackend struct {
	conn     *x11.Connection
	surfaces map[WindowID]*x11.Surface
	sizes    map[WindowID]int
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{
		conn:     conn,
		surfaces: make(map[WindowID]*x11.Surface),
		sizes:    make(map[WindowID]int),
	}
}

// NewLinuxBackendFromDisplay creates a Linux backend by opening a fresh
// X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// CreateWindow creates a borderless square top-level window and its
// backing surface. The window is not mapped until RaiseAndCenter.
func (b *LinuxBackend) CreateWindow(title string, size int) (WindowID, error) {
	wid, err := b.conn.CreateOverlayWindow(title, size)
	if err != nil {
		return 0, err
	}

	surface, err := b.conn.NewSurface(wid, size)
	if err != nil {
		_ = b.conn.DestroyWindow(wid)
		return 0, err
	}

	id := WindowID(wid)
	b.surfaces[id] = surface
	b.sizes[id] = size
	return id, nil
}

func (b *LinuxBackend) SetCircularRegion(id WindowID, diameter int) error {
	return b.conn.SetCircleShape(xproto.Window(id), diameter)
}

func (b *LinuxBackend) SetColorKey(id WindowID, key RGB) error {
	surface, ok := b.surfaces[id]
	if !ok {
		return fmt.Errorf("no surface for window %d", id)
	}
	surface.SetColorKey(key.R, key.G, key.B)
	return nil
}

func (b *LinuxBackend) RaiseAndCenter(id WindowID) error {
	size, ok := b.sizes[id]
	if !ok {
		return fmt.Errorf("unknown window %d", id)
	}
	return b.conn.MapCentered(xproto.Window(id), size)
}

func (b *LinuxBackend) Activate(id WindowID) error {
	return b.conn.ActivateWindow(xproto.Window(id))
}

func (b *LinuxBackend) SetWindowPosition(id WindowID, x, y int) error {
	return b.conn.MoveWindow(xproto.Window(id), x, y)
}

func (b *LinuxBackend) WindowRect(id WindowID) (Rect, error) {
	x, y, w, h, err := b.conn.WindowRect(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *LinuxBackend) CursorPosition() (Point, error) {
	x, y, err := b.conn.CursorPosition()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (b *LinuxBackend) ForegroundWindow() (WindowID, error) {
	wid, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

func (b *LinuxBackend) FlashTaskbar(id WindowID, count int) error {
	// X11 has no flash count; DEMANDS_ATTENTION blinks until the user
	// focuses the window.
	_ = count
	return b.conn.DemandAttention(xproto.Window(id))
}

func (b *LinuxBackend) PollEvents(id WindowID) ([]Event, error) {
	raw := b.conn.DrainEvents(xproto.Window(id))
	if len(raw) == 0 {
		return nil, nil
	}

	events := make([]Event, 0, len(raw))
	for _, in := range raw {
		events = append(events, translateEvent(in))
	}
	return events, nil
}

func translateEvent(in x11.InputEvent) Event {
	out := Event{
		Pos:  Point{X: in.X, Y: in.Y},
		Root: Point{X: in.RootX, Y: in.RootY},
	}

	switch in.Type {
	case x11.EventClose:
		out.Kind = EventQuit
	case x11.EventKeyPress:
		out.Kind = EventKeyDown
		out.Key = translateKeysym(uint32(in.Keysym))
	case x11.EventKeyRelease:
		out.Kind = EventKeyUp
		out.Key = translateKeysym(uint32(in.Keysym))
	case x11.EventButtonPress:
		out.Kind = EventPointerDown
		out.Button = translateButton(in.Button)
	case x11.EventButtonRelease:
		out.Kind = EventPointerUp
		out.Button = translateButton(in.Button)
	case x11.EventMotion:
		out.Kind = EventPointerMove
	}
	return out
}

func translateKeysym(keysym uint32) Key {
	switch keysym {
	case keysymEscape:
		return KeyEscape
	case keysymReturn, keysymKPEnter:
		return KeyReturn
	case 0:
		return KeyNone
	default:
		return KeyOther
	}
}

func translateButton(button byte) Button {
	switch button {
	case 1:
		return ButtonPrimary
	case 4:
		return ButtonWheelUp
	case 5:
		return ButtonWheelDown
	default:
		return ButtonOther
	}
}

func (b *LinuxBackend) Surface(id WindowID) (draw.Image, error) {
	surface, ok := b.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("no surface for window %d", id)
	}
	return surface.Image(), nil
}

func (b *LinuxBackend) Present(id WindowID) error {
	surface, ok := b.surfaces[id]
	if !ok {
		return fmt.Errorf("no surface for window %d", id)
	}
	return surface.Present()
}

func (b *LinuxBackend) DestroyWindow(id WindowID) error {
	if surface, ok := b.surfaces[id]; ok {
		surface.Destroy()
		delete(b.surfaces, id)
	}
	delete(b.sizes, id)
	return b.conn.DestroyWindow(xproto.Window(id))
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}
