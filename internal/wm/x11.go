package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// X11 talks EWMH directly over a native X connection instead of shelling
// out to wmctrl.
type X11 struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ Backend = (*X11)(nil)

// NewX11 opens a fresh X11 connection.
func NewX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11{xu: xu, root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (b *X11) Close() {
	b.xu.Conn().Close()
}

// ListWindows returns every window in the EWMH client list. Windows whose
// geometry cannot be read (raced a close) are skipped.
func (b *X11) ListWindows() ([]Window, error) {
	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	windows := make([]Window, 0, len(clients))
	for _, id := range clients {
		win := Window{ID: uint32(id)}

		desktop, err := ewmh.WmDesktopGet(b.xu, id)
		switch {
		case err != nil:
			win.Desktop = 0
		case desktop == 0xFFFFFFFF:
			// Sticky: visible on all desktops.
			win.Desktop = -1
		default:
			win.Desktop = int(desktop)
		}

		if pid, err := ewmh.WmPidGet(b.xu, id); err == nil {
			win.PID = int(pid)
		}

		geom, ok := b.windowGeometry(id)
		if !ok {
			continue
		}
		win.X, win.Y, win.Width, win.Height = geom.X, geom.Y, geom.Width, geom.Height
		win.Title = b.windowTitle(id)

		windows = append(windows, win)
	}
	return windows, nil
}

// MoveResize uses the EWMH moveresize request for WM compatibility and falls
// back to direct window manipulation when the WM rejects it. Maximized
// windows are unmaximized first or many WMs ignore the request.
func (b *X11) MoveResize(id uint32, g Geometry) error {
	win := xproto.Window(id)
	b.unmaximize(win)
	if err := ewmh.MoveresizeWindow(b.xu, win, g.X, g.Y, g.Width, g.Height); err != nil {
		xwindow.New(b.xu, win).MoveResize(g.X, g.Y, g.Width, g.Height)
	}
	return nil
}

func (b *X11) unmaximize(win xproto.Window) {
	states, err := ewmh.WmStateGet(b.xu, win)
	if err != nil {
		return
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(b.xu, win, 0, state)
		}
	}
}

// SetDesktop sends a _NET_WM_DESKTOP client message to the root window per
// the EWMH spec. The message is built manually because the xgbutil
// ewmh.WmDesktopReq helper panics on this library version (uint vs int type
// assertion).
func (b *X11) SetDesktop(id uint32, desktop int) error {
	atomReply, err := xproto.InternAtom(b.xu.Conn(), false,
		uint16(len("_NET_WM_DESKTOP")), "_NET_WM_DESKTOP").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_DESKTOP: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(desktop), sourceIndication, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		b.xu.Conn(),
		false,
		b.root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func (b *X11) windowGeometry(id xproto.Window) (Geometry, bool) {
	geom, err := xproto.GetGeometry(b.xu.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return Geometry{}, false
	}

	translate, err := xproto.TranslateCoordinates(b.xu.Conn(), id, b.root, 0, 0).Reply()
	if err != nil {
		return Geometry{}, false
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

func (b *X11) windowTitle(id xproto.Window) string {
	if title, err := ewmh.WmNameGet(b.xu, id); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(b.xu, id); err == nil {
		return title
	}
	return ""
}
