package layout

import (
	"fmt"
	"log/slog"

	"github.com/crustymonkey/linux-auto-win/internal/config"
	"github.com/crustymonkey/linux-auto-win/internal/wm"
)

// Applier issues placement operations for matched windows.
type Applier struct {
	Backend wm.Backend
	Logger  *slog.Logger
}

// Apply places one assignment: move/resize first, then desktop
// reassignment. The two calls are deliberately separate and not
// transactional; an interrupt between them leaves the window half placed,
// which is accepted best-effort semantics.
func (a *Applier) Apply(as Assignment) error {
	g := wm.Geometry{
		X:      as.Rule.XOff,
		Y:      as.Rule.YOff,
		Width:  as.Rule.Width,
		Height: as.Rule.Height,
	}
	if err := a.Backend.MoveResize(as.Window.ID, g); err != nil {
		return fmt.Errorf("failed to place window %q: %w", as.Window.Title, err)
	}
	if err := a.Backend.SetDesktop(as.Window.ID, as.Rule.Desk); err != nil {
		return fmt.Errorf("failed to move window %q to desktop %d: %w", as.Window.Title, as.Rule.Desk, err)
	}
	return nil
}

// ApplyProfile matches the rule list against the window inventory and
// applies each assignment in rule order. Returns the assignments made.
func (a *Applier) ApplyProfile(rules []config.Rule, windows []wm.Window) ([]Assignment, error) {
	assigned := Match(rules, windows)
	for _, as := range assigned {
		a.Logger.Debug("adjusting window",
			"title", as.Window.Title,
			"rule", as.Rule.Name,
			"desk", as.Rule.Desk,
			"shell", as.Window.IsShell)
		if err := a.Apply(as); err != nil {
			return assigned, err
		}
	}
	return assigned, nil
}
