package x11

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// Surface is the overlay window's backing image. Draw calls render into
// the image; Present pushes the pixels to the window and, when a color
// key is set, recomputes the window shape so key-colored pixels become
// fully transparent.
type Surface struct {
	conn   *Connection
	win    xproto.Window
	img    *xgraphics.Image
	size   int
	keySet bool
	keyB   uint8
	keyG   uint8
	keyR   uint8
}

// NewSurface allocates a server-side surface for the window.
func (c *Connection) NewSurface(wid xproto.Window, size int) (*Surface, error) {
	img := xgraphics.New(c.XUtil, image.Rect(0, 0, size, size))
	if err := img.XSurfaceSet(wid); err != nil {
		return nil, fmt.Errorf("failed to attach surface to window: %w", err)
	}
	return &Surface{
		conn: c,
		win:  wid,
		img:  img,
		size: size,
	}, nil
}

// Image returns the drawable backing image.
func (s *Surface) Image() draw.Image {
	return s.img
}

// SetColorKey arms per-present transparency: pixels of exactly this color
// are punched out of the bounding shape on every Present.
func (s *Surface) SetColorKey(r, g, b uint8) {
	s.keySet = true
	s.keyR = r
	s.keyG = g
	s.keyB = b
}

// Present flushes the backing image to the window.
func (s *Surface) Present() error {
	if s.keySet {
		rects := s.opaqueRows()
		err := shape.RectanglesChecked(
			s.conn.XUtil.Conn(),
			shape.SoSet,
			shape.SkBounding,
			xproto.ClipOrderingYXSorted,
			s.win,
			0, 0,
			rects,
		).Check()
		if err != nil {
			return fmt.Errorf("failed to update window shape: %w", err)
		}
	}

	s.img.XDraw()
	s.img.XPaint(s.win)
	return nil
}

// opaqueRows returns one rectangle per horizontal run of non-key pixels.
// The backing image stores pixels in BGRA order.
func (s *Surface) opaqueRows() []xproto.Rectangle {
	rects := make([]xproto.Rectangle, 0, s.size)
	for y := 0; y < s.size; y++ {
		row := s.img.Pix[y*s.img.Stride:]
		runStart := -1
		for x := 0; x < s.size; x++ {
			i := x * 4
			key := row[i] == s.keyB && row[i+1] == s.keyG && row[i+2] == s.keyR
			if !key && runStart < 0 {
				runStart = x
			}
			if key && runStart >= 0 {
				rects = append(rects, spanRect(runStart, y, x-runStart))
				runStart = -1
			}
		}
		if runStart >= 0 {
			rects = append(rects, spanRect(runStart, y, s.size-runStart))
		}
	}
	return rects
}

func spanRect(x, y, width int) xproto.Rectangle {
	return xproto.Rectangle{
		X:      int16(x),
		Y:      int16(y),
		Width:  uint16(width),
		Height: 1,
	}
}

// Destroy frees the server-side pixmap.
func (s *Surface) Destroy() {
	s.img.Destroy()
}
