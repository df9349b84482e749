// autowin detects the attached monitor set, maps it to a named state, and
// re-lays-out windows when the state changed since the last run. Meant to be
// invoked from a display hot-plug hook; it does one pass and exits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/crustymonkey/linux-auto-win/internal/autostate"
	"github.com/crustymonkey/linux-auto-win/internal/config"
	"github.com/crustymonkey/linux-auto-win/internal/layout"
	"github.com/crustymonkey/linux-auto-win/internal/monitors"
	"github.com/crustymonkey/linux-auto-win/internal/procs"
	"github.com/crustymonkey/linux-auto-win/internal/statefile"
	"github.com/crustymonkey/linux-auto-win/internal/wm"
)

func main() {
	// A user interrupt mid-run is a clean exit: in-flight placements stay
	// as-is and no state is persisted.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		os.Exit(0)
	}()

	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defConf, _ := config.DefaultPath()

	fs := flag.NewFlagSet("autowin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		confPath  string
		statePath string
		monsOnly  bool
		debug     bool
		backend   string
	)
	fs.StringVar(&confPath, "c", defConf, "The path to the JSON config (shared with adjwin)")
	fs.StringVar(&confPath, "config", defConf, "The path to the JSON config (shared with adjwin)")
	fs.StringVar(&statePath, "s", statefile.DefaultPath, "The path to the state file")
	fs.StringVar(&statePath, "state-file", statefile.DefaultPath, "The path to the state file")
	fs.BoolVar(&monsOnly, "m", false, "Just output the monitors found and exit")
	fs.BoolVar(&monsOnly, "monitors-only", false, "Just output the monitors found and exit")
	fs.BoolVar(&debug, "D", false, "Add debug output")
	fs.BoolVar(&debug, "debug", false, "Add debug output")
	fs.StringVar(&backend, "b", "x11", "Window backend: x11 or wmctrl")
	fs.StringVar(&backend, "backend", "x11", "Window backend: x11 or wmctrl")
	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "autowin takes no arguments")
		fs.Usage()
		return 2
	}
	logger := newLogger(debug)

	cfg, err := config.LoadFromPath(confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	scanner := monitors.NewScanner(logger)
	mons, err := scanner.Scan(cfg.MonMap.BuiltIn.Identity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if monsOnly {
		printMonitors(os.Stdout, mons)
		return 0
	}
	logger.Debug("found monitors", "count", len(mons))

	current, matched := monitors.Classify(mons, cfg.MonMap)

	sw := &autostate.Switcher{
		Store:  &statefile.Store{Path: statePath},
		Logger: logger,
		Apply: func(state string) error {
			return applyState(cfg, state, backend, logger)
		},
	}
	if err := sw.Run(current, matched); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

// applyState runs the full layout pass for one state name.
func applyState(cfg *config.Config, state, backend string, logger *slog.Logger) error {
	rules, err := cfg.Profile(state)
	if err != nil {
		return err
	}

	be, err := wm.Open(backend, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	windows, err := be.ListWindows()
	if err != nil {
		return err
	}

	table, err := procs.Snapshot()
	if err != nil {
		return err
	}
	for i := range windows {
		windows[i].IsShell = table.IsShell(windows[i].PID, cfg.ShellClasses)
	}

	applier := &layout.Applier{Backend: be, Logger: logger}
	_, err = applier.ApplyProfile(rules, windows)
	return err
}

func printMonitors(w io.Writer, mons []monitors.Monitor) {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}

	header := "Found the following monitors:"
	if styled {
		header = lipgloss.NewStyle().Bold(true).Render(header)
	}
	fmt.Fprintln(w, header)

	faint := lipgloss.NewStyle().Faint(true)
	for _, m := range mons {
		line := "    " + m.String()
		if styled && m.BuiltIn {
			line = faint.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: autowin [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Match the attached monitors to a configured state and adjust windows")
	fmt.Fprintln(w, "when the state changed since the last run.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
