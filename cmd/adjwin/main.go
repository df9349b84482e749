// adjwin moves and resizes open windows to match a named layout profile.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/crustymonkey/linux-auto-win/internal/config"
	"github.com/crustymonkey/linux-auto-win/internal/layout"
	"github.com/crustymonkey/linux-auto-win/internal/procs"
	"github.com/crustymonkey/linux-auto-win/internal/wm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defConf, _ := config.DefaultPath()

	fs := flag.NewFlagSet("adjwin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		confPath string
		debug    bool
		backend  string
	)
	fs.StringVar(&confPath, "c", defConf, "The path to the profile config")
	fs.StringVar(&confPath, "profile-config", defConf, "The path to the profile config")
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
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "adjwin requires exactly one <profile> argument")
		fs.Usage()
		return 2
	}
	profile := fs.Arg(0)
	logger := newLogger(debug)

	cfg, err := config.LoadFromPath(confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rules, err := cfg.Profile(profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	be, err := wm.Open(backend, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer be.Close()

	windows, err := be.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Build the process table once and thread it through; window records
	// carry the derived shell classification from here on.
	table, err := procs.Snapshot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for i := range windows {
		windows[i].IsShell = table.IsShell(windows[i].PID, cfg.ShellClasses)
	}

	applier := &layout.Applier{Backend: be, Logger: logger}
	assigned, err := applier.ApplyProfile(rules, windows)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Debug("profile applied", "profile", profile, "matched", len(assigned), "rules", len(rules))

	return 0
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: adjwin [options] <profile>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Adjust open windows to the named layout profile from the config.")
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
