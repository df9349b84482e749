// Package procs builds a one-shot process lookup table used to classify
// which windows belong to terminal emulators. The table is constructed once
// per invocation and passed to whoever needs it; there is no process-wide
// cache.
package procs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Process is one row of the process listing.
type Process struct {
	PID     int
	Command string
}

// Table maps pid to process info.
type Table map[int]Process

// Snapshot lists all running processes via ps.
func Snapshot() (Table, error) {
	out, err := exec.Command("ps", "-e", "-o", "pid=", "-o", "args=").Output()
	if err != nil {
		return nil, fmt.Errorf("ps failed: %w", err)
	}
	return Parse(string(out))
}

// Parse builds a Table from `ps -e -o pid= -o args=` output: one process per
// line, pid then the full command line.
func Parse(text string) (Table, error) {
	t := make(Table)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		pidStr, cmd, _ := strings.Cut(line, " ")
		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			return nil, fmt.Errorf("malformed ps output line %q: bad pid", line)
		}
		t[pid] = Process{PID: pid, Command: strings.TrimSpace(cmd)}
	}
	return t, nil
}

// IsShell reports whether the process is one of the configured terminal
// emulator classes. Unknown pids are not shells.
func (t Table) IsShell(pid int, classes []string) bool {
	p, ok := t[pid]
	if !ok {
		return false
	}
	for _, class := range classes {
		if class != "" && strings.Contains(p.Command, class) {
			return true
		}
	}
	return false
}
