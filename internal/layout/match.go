// Package layout matches open windows against a profile's placement rules
// and applies the resulting assignments.
package layout

import (
	"strings"

	"github.com/crustymonkey/linux-auto-win/internal/config"
	"github.com/crustymonkey/linux-auto-win/internal/wm"
)

// Assignment pairs one window with the rule that claimed it.
type Assignment struct {
	Window wm.Window
	Rule   config.Rule
}

// Match performs ordered greedy first-fit matching: for each rule in profile
// order, the first remaining window whose title contains the rule name as a
// case-sensitive substring claims it and leaves the candidate pool, so
// earlier rules have priority when several windows satisfy the same
// substring. Rules with no matching window are skipped.
//
// Each window is assigned to at most one rule and each rule claims at most
// one window. The input slice is never mutated; the pool is reduced into a
// fresh slice after every claim.
func Match(rules []config.Rule, windows []wm.Window) []Assignment {
	remaining := make([]wm.Window, len(windows))
	copy(remaining, windows)

	var assigned []Assignment
	for _, rule := range rules {
		idx := -1
		for i, win := range remaining {
			if strings.Contains(win.Title, rule.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		assigned = append(assigned, Assignment{Window: remaining[idx], Rule: rule})

		next := make([]wm.Window, 0, len(remaining)-1)
		next = append(next, remaining[:idx]...)
		next = append(next, remaining[idx+1:]...)
		remaining = next
	}
	return assigned
}
