package wm

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultWmctrlBin is the wmctrl binary path.
const DefaultWmctrlBin = "/usr/bin/wmctrl"

// clientLineFields is the column count of `wmctrl -l -G -p` output:
// window-id, desktop, pid, x, y, width, height, client machine, title.
const clientLineFields = 9

// ParseError describes a malformed line of wmctrl output.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed wmctrl output line %q: %s", e.Line, e.Reason)
}

// Wmctrl shells out to the wmctrl tool for every operation.
type Wmctrl struct {
	Bin    string
	Logger *slog.Logger

	// run is the exec seam; tests replace it with canned output.
	run func(args ...string) (string, error)
}

var _ Backend = (*Wmctrl)(nil)

// NewWmctrl returns a backend over the default wmctrl binary.
func NewWmctrl(logger *slog.Logger) *Wmctrl {
	w := &Wmctrl{Bin: DefaultWmctrlBin, Logger: logger}
	w.run = w.runCommand
	return w
}

func (w *Wmctrl) runCommand(args ...string) (string, error) {
	w.Logger.Debug("running wmctrl", "args", strings.Join(args, " "))
	out, err := exec.Command(w.Bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("wmctrl %s failed: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// ListWindows runs `wmctrl -l -G -p` and parses one Window per line.
func (w *Wmctrl) ListWindows() ([]Window, error) {
	out, err := w.run("-l", "-G", "-p")
	if err != nil {
		return nil, err
	}

	var windows []Window
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		win, err := ParseClientLine(line)
		if err != nil {
			return nil, err
		}
		windows = append(windows, win)
	}
	return windows, nil
}

// ParseClientLine parses one line of `wmctrl -l -G -p` output. The title is
// everything after the client-machine column, spaces preserved.
func ParseClientLine(line string) (Window, error) {
	fields := splitFieldsN(strings.TrimSpace(line), clientLineFields)
	if len(fields) < clientLineFields-1 {
		// The title may legitimately be empty, everything before it may not.
		return Window{}, &ParseError{Line: line, Reason: fmt.Sprintf("want %d fields, got %d", clientLineFields, len(fields))}
	}

	id, err := strconv.ParseUint(fields[0], 0, 32)
	if err != nil {
		return Window{}, &ParseError{Line: line, Reason: "bad window id " + fields[0]}
	}

	ints := make([]int, 6)
	for i, f := range fields[1:7] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Window{}, &ParseError{Line: line, Reason: fmt.Sprintf("bad numeric field %q", f)}
		}
		ints[i] = n
	}

	title := ""
	if len(fields) == clientLineFields {
		title = fields[8]
	}

	return Window{
		ID:      uint32(id),
		Desktop: ints[0],
		PID:     ints[1],
		X:       ints[2],
		Y:       ints[3],
		Width:   ints[4],
		Height:  ints[5],
		Title:   title,
	}, nil
}

// MoveResize places the window with gravity 0 (static).
func (w *Wmctrl) MoveResize(id uint32, g Geometry) error {
	_, err := w.run("-i", "-r", windowArg(id), "-e",
		fmt.Sprintf("0,%d,%d,%d,%d", g.X, g.Y, g.Width, g.Height))
	return err
}

// SetDesktop moves the window to the given desktop.
func (w *Wmctrl) SetDesktop(id uint32, desktop int) error {
	_, err := w.run("-i", "-r", windowArg(id), "-t", strconv.Itoa(desktop))
	return err
}

// Close is a no-op; wmctrl holds no connection.
func (w *Wmctrl) Close() {}

func windowArg(id uint32) string {
	return fmt.Sprintf("0x%08x", id)
}

// splitFieldsN splits on runs of whitespace into at most n fields; the last
// field keeps the remainder of the line verbatim (minus trailing space).
func splitFieldsN(s string, n int) []string {
	var fields []string
	rest := s
	for len(fields) < n-1 {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:i])
		rest = rest[i:]
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest != "" {
		fields = append(fields, strings.TrimRight(rest, " \t"))
	}
	return fields
}
