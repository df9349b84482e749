// Package wm abstracts the window-system operations the placer needs:
// listing open windows, move/resize, and desktop reassignment.
package wm

import (
	"fmt"
	"log/slog"
)

// Window is one open top-level window as reported by the window manager.
// IsShell is derived after listing, from the owning process.
type Window struct {
	ID      uint32
	Desktop int // -1 for sticky windows (visible on all desktops)
	PID     int
	X       int
	Y       int
	Width   int
	Height  int
	Title   string
	IsShell bool
}

// Geometry is an absolute position and size in root-window coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend performs window-system operations. Implementations are the wmctrl
// command-line tool and a native X11 connection.
type Backend interface {
	ListWindows() ([]Window, error)
	// MoveResize places a window with static gravity: the given coordinates
	// are absolute, with no centering or screen-relative adjustment.
	MoveResize(id uint32, g Geometry) error
	SetDesktop(id uint32, desktop int) error
	Close()
}

// Open returns the backend selected by name: "x11" (native connection) or
// "wmctrl" (external tool).
func Open(name string, logger *slog.Logger) (Backend, error) {
	switch name {
	case "x11":
		return NewX11()
	case "wmctrl":
		return NewWmctrl(logger), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (use x11 or wmctrl)", name)
	}
}
