// Package autostate holds the transition policy between the classified
// monitor state and the persisted one: decide whether a layout pass runs,
// then record the new state.
package autostate

import (
	"log/slog"

	"github.com/crustymonkey/linux-auto-win/internal/statefile"
)

// Store persists the last-applied state name (see statefile.Store).
type Store interface {
	Read() (state string, ok bool, err error)
	Write(state string) error
}

// Switcher applies the state transition policy.
type Switcher struct {
	Store  Store
	Logger *slog.Logger

	// Apply runs the window layout pass for a state. It is only invoked for
	// real states, never for the unknown sentinel.
	Apply func(state string) error
}

// Run compares the freshly classified state against the persisted one.
//
// matched=false means no configured monitor set fit; that is not an error,
// the state becomes the unknown sentinel, gets logged at warning level, and
// is still persisted so a flapping unmatched configuration is not
// reprocessed on every trigger. When persisted and current states agree
// nothing happens at all, which keeps spurious hot-plug events from
// reshuffling windows.
func (s *Switcher) Run(current string, matched bool) error {
	if !matched {
		s.Logger.Warn("failed to match a monitor config, setting state to unknown")
		current = statefile.Unknown
	}

	prev, ok, err := s.Store.Read()
	if err != nil {
		return err
	}
	s.Logger.Debug("resolved states", "current", current, "saved", prev, "have_saved", ok)

	if ok && prev == current {
		s.Logger.Debug("current state matches saved state, doing nothing")
		return nil
	}

	if current != statefile.Unknown {
		s.Logger.Debug("adjusting windows", "state", current)
		if err := s.Apply(current); err != nil {
			return err
		}
	}

	s.Logger.Debug("saving current state", "state", current)
	return s.Store.Write(current)
}
