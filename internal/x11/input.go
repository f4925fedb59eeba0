package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// EventType classifies drained input events.
type EventType int

const (
	EventClose EventType = iota
	EventKeyPress
	EventKeyRelease
	EventButtonPress
	EventButtonRelease
	EventMotion
)

// InputEvent is a drained X event reduced to what the overlay consumes.
// X and Y are window-local; RootX and RootY are root coordinates.
type InputEvent struct {
	Type   EventType
	Keysym xproto.Keysym
	Button byte
	X      int
	Y      int
	RootX  int
	RootY  int
}

// rawKey carries timing needed for auto-repeat detection before events
// are reduced to InputEvent.
type rawEvent struct {
	ev   InputEvent
	key  bool
	code xproto.Keycode
	time xproto.Timestamp
}

// DrainEvents drains all pending events for the window without blocking.
// Key auto-repeat arrives as release/press pairs with identical
// timestamps; those pairs are dropped so a held key reports exactly one
// press and one release.
func (c *Connection) DrainEvents(wid xproto.Window) []InputEvent {
	var raw []rawEvent

	for {
		ev, xerr := c.XUtil.Conn().PollForEvent()
		if ev == nil && xerr == nil {
			break
		}
		if xerr != nil {
			continue
		}

		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			if e.Event != wid {
				continue
			}
			raw = append(raw, rawEvent{
				ev: InputEvent{
					Type:   EventKeyPress,
					Keysym: keybind.KeysymGet(c.XUtil, e.Detail, 0),
				},
				key:  true,
				code: e.Detail,
				time: e.Time,
			})
		case xproto.KeyReleaseEvent:
			if e.Event != wid {
				continue
			}
			raw = append(raw, rawEvent{
				ev: InputEvent{
					Type:   EventKeyRelease,
					Keysym: keybind.KeysymGet(c.XUtil, e.Detail, 0),
				},
				key:  true,
				code: e.Detail,
				time: e.Time,
			})
		case xproto.ButtonPressEvent:
			if e.Event != wid {
				continue
			}
			raw = append(raw, rawEvent{ev: InputEvent{
				Type:   EventButtonPress,
				Button: byte(e.Detail),
				X:      int(e.EventX),
				Y:      int(e.EventY),
				RootX:  int(e.RootX),
				RootY:  int(e.RootY),
			}})
		case xproto.ButtonReleaseEvent:
			if e.Event != wid {
				continue
			}
			raw = append(raw, rawEvent{ev: InputEvent{
				Type:   EventButtonRelease,
				Button: byte(e.Detail),
				X:      int(e.EventX),
				Y:      int(e.EventY),
				RootX:  int(e.RootX),
				RootY:  int(e.RootY),
			}})
		case xproto.MotionNotifyEvent:
			if e.Event != wid {
				continue
			}
			raw = append(raw, rawEvent{ev: InputEvent{
				Type:  EventMotion,
				X:     int(e.EventX),
				Y:     int(e.EventY),
				RootX: int(e.RootX),
				RootY: int(e.RootY),
			}})
		case xproto.ClientMessageEvent:
			if e.Window != wid {
				continue
			}
			if c.isDeleteMessage(e) {
				raw = append(raw, rawEvent{ev: InputEvent{Type: EventClose}})
			}
		case xproto.DestroyNotifyEvent:
			if e.Window == wid {
				raw = append(raw, rawEvent{ev: InputEvent{Type: EventClose}})
			}
		}
	}

	out := make([]InputEvent, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		cur := raw[i]
		if cur.key && cur.ev.Type == EventKeyRelease && i+1 < len(raw) {
			next := raw[i+1]
			if next.key && next.ev.Type == EventKeyPress &&
				next.code == cur.code && next.time == cur.time {
				i++ // auto-repeat pair
				continue
			}
		}
		out = append(out, cur.ev)
	}
	return out
}

// isDeleteMessage reports whether a client message is WM_DELETE_WINDOW.
func (c *Connection) isDeleteMessage(e xproto.ClientMessageEvent) bool {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil || e.Type != protocols {
		return false
	}
	deleteAtom, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return false
	}
	data := e.Data.Data32
	return len(data) > 0 && xproto.Atom(data[0]) == deleteAtom
}
