package platform

import "image/draw"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a position in screen or window coordinates depending on context.
type Point struct {
	X int
	Y int
}

// EventKind classifies input events delivered to the overlay window.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerUp
	EventPointerMove
)

// Key identifies keys the overlay reacts to. Everything else maps to KeyOther.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyReturn
	KeyOther
)

// Button identifies pointer buttons. Wheel ticks arrive as press events.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonWheelUp
	ButtonWheelDown
	ButtonOther
)

// Event is a single input event, already translated to platform-neutral form.
// Pos is window-local; Root is in screen coordinates.
type Event struct {
	Kind   EventKind
	Key    Key
	Button Button
	Pos    Point
	Root   Point
}

// Backend abstracts the window-system operations the overlay needs.
// Implementations are not required to be safe for concurrent use; the
// frame loop is the only caller.
type Backend interface {
	// CreateWindow creates a borderless, always-on-top, square top-level
	// window of the given pixel size. The window is not mapped yet.
	CreateWindow(title string, size int) (WindowID, error)

	// SetCircularRegion restricts the window's visible region to a circle
	// of the given diameter anchored at the top-left corner.
	SetCircularRegion(id WindowID, diameter int) error

	// SetColorKey marks one color as fully transparent: pixels of exactly
	// this color are punched out of the window on each Present.
	SetColorKey(id WindowID, key RGB) error

	// RaiseAndCenter maps the window centered on the active monitor and
	// asks the window manager to focus it.
	RaiseAndCenter(id WindowID) error

	// Activate requests keyboard focus for the window.
	Activate(id WindowID) error

	SetWindowPosition(id WindowID, x, y int) error
	WindowRect(id WindowID) (Rect, error)
	CursorPosition() (Point, error)

	// ForegroundWindow reports which top-level window currently has focus.
	ForegroundWindow() (WindowID, error)

	// FlashTaskbar asks the window manager to draw attention to the window
	// (taskbar flash or equivalent). Count is advisory.
	FlashTaskbar(id WindowID, count int) error

	// PollEvents drains all pending events for the window without blocking.
	PollEvents(id WindowID) ([]Event, error)

	// Surface returns the window's backing image. Drawing into it has no
	// visible effect until Present is called.
	Surface(id WindowID) (draw.Image, error)
	Present(id WindowID) error

	DestroyWindow(id WindowID) error
	Close()
}

// RGB is an opaque 8-bit color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}
