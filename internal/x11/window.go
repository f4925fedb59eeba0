package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
)

// CreateOverlayWindow creates a borderless square top-level window.
// The window is configured (no decorations, fixed size, always-on-top
// state, WM_DELETE_WINDOW protocol) but not mapped.
func (c *Connection) CreateOverlayWindow(title string, size int) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	screen := c.XUtil.Screen()
	eventMask := uint32(xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskExposure |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskFocusChange)

	err = xproto.CreateWindowChecked(
		c.XUtil.Conn(),
		screen.RootDepth,
		wid,
		c.Root,
		0, 0,
		uint16(size), uint16(size),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{0x000000, eventMask},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create overlay window: %w", err)
	}

	// Remove window manager decorations entirely.
	hints := motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: 0,
	}
	if err := motif.WmHintsSet(c.XUtil, wid, &hints); err != nil {
		return 0, fmt.Errorf("failed to set motif hints: %w", err)
	}

	// Pin the size so the WM never resizes the shaped region out from
	// under us.
	normal := icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(size),
		MinHeight: uint(size),
		MaxWidth:  uint(size),
		MaxHeight: uint(size),
	}
	if err := icccm.WmNormalHintsSet(c.XUtil, wid, &normal); err != nil {
		return 0, fmt.Errorf("failed to set size hints: %w", err)
	}

	if err := icccm.WmProtocolsSet(c.XUtil, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		return 0, fmt.Errorf("failed to set WM protocols: %w", err)
	}

	_ = ewmh.WmWindowTypeSet(c.XUtil, wid, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})
	_ = ewmh.WmNameSet(c.XUtil, wid, title)

	// State set before mapping; the WM reads it at map time.
	_ = ewmh.WmStateSet(c.XUtil, wid, []string{"_NET_WM_STATE_ABOVE"})

	return wid, nil
}

// SetCircleShape restricts the window's bounding region to a circle of
// the given diameter anchored at the top-left corner.
func (c *Connection) SetCircleShape(wid xproto.Window, diameter int) error {
	rects := circleRows(diameter)
	return shape.RectanglesChecked(
		c.XUtil.Conn(),
		shape.SoSet,
		shape.SkBounding,
		xproto.ClipOrderingYXBanded,
		wid,
		0, 0,
		rects,
	).Check()
}

// circleRows returns one rectangle per scanline of a filled circle.
func circleRows(diameter int) []xproto.Rectangle {
	r := float64(diameter) / 2
	rects := make([]xproto.Rectangle, 0, diameter)
	for y := 0; y < diameter; y++ {
		dy := float64(y) + 0.5 - r
		sq := r*r - dy*dy
		if sq <= 0 {
			continue
		}
		half := math.Sqrt(sq)
		x1 := int(math.Floor(r - half))
		x2 := int(math.Ceil(r + half))
		if x1 < 0 {
			x1 = 0
		}
		if x2 > diameter {
			x2 = diameter
		}
		if x2 <= x1 {
			continue
		}
		rects = append(rects, xproto.Rectangle{
			X:      int16(x1),
			Y:      int16(y),
			Width:  uint16(x2 - x1),
			Height: 1,
		})
	}
	return rects
}

// MapCentered maps the window centered on the active monitor and raises it.
func (c *Connection) MapCentered(wid xproto.Window, size int) error {
	mon, err := c.GetActiveMonitor()
	if err != nil {
		return err
	}

	x := mon.X + (mon.Width-size)/2
	y := mon.Y + (mon.Height-size)/2
	if err := c.MoveWindow(wid, x, y); err != nil {
		return err
	}

	if err := xproto.MapWindowChecked(c.XUtil.Conn(), wid).Check(); err != nil {
		return fmt.Errorf("failed to map overlay window: %w", err)
	}

	// Some WMs drop the pre-map state; re-assert after mapping.
	_ = ewmh.WmStateReq(c.XUtil, wid, ewmh.StateAdd, "_NET_WM_STATE_ABOVE")
	_ = ewmh.ActiveWindowReq(c.XUtil, wid)

	return nil
}

// ActivateWindow asks the window manager to give the window keyboard focus.
func (c *Connection) ActivateWindow(wid xproto.Window) error {
	return ewmh.ActiveWindowReq(c.XUtil, wid)
}

// GetActiveWindow returns the currently focused top-level window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// MoveWindow repositions a window without resizing it.
func (c *Connection) MoveWindow(wid xproto.Window, x, y int) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)},
	).Check()
}

// WindowRect returns a window's geometry in root coordinates.
func (c *Connection) WindowRect(wid xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(wid)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get window geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		wid,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// CursorPosition returns the pointer location in root coordinates.
func (c *Connection) CursorPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// DemandAttention sets the urgency state so the taskbar entry flashes.
// The window manager owns the blink cadence; repeated calls re-arm it.
func (c *Connection) DemandAttention(wid xproto.Window) error {
	return ewmh.WmStateReq(c.XUtil, wid, ewmh.StateAdd, "_NET_WM_STATE_DEMANDS_ATTENTION")
}

// DestroyWindow destroys a window and all associated server resources.
func (c *Connection) DestroyWindow(wid xproto.Window) error {
	return xproto.DestroyWindowChecked(c.XUtil.Conn(), wid).Check()
}
