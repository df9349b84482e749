// Package statefile persists the last-applied state name between runs so a
// redundant hot-plug trigger does not reshuffle windows.
package statefile

import (
	"fmt"
	"os"
	"strings"
)

// Unknown is the sentinel persisted when the attached monitors match no
// configured set. It is distinct from "no state file yet".
const Unknown = "unknown"

// DefaultPath is where the watcher keeps its state between runs.
const DefaultPath = "/var/tmp/monmap.state"

// Store reads and writes the single-line state file.
type Store struct {
	Path string
}

// Read returns the persisted state. ok is false when no state has ever been
// written (absent file), which callers must treat differently from Unknown.
func (s *Store) Read() (state string, ok bool, err error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read state file %s: %w", s.Path, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Write replaces the persisted state.
func (s *Store) Write(state string) error {
	if err := os.WriteFile(s.Path, []byte(state), 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.Path, err)
	}
	return nil
}
