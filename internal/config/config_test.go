package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crustymonkey/linux-auto-win/internal/monitors"
)

const sampleConfig = `{
  "_mon_map_": {
    "built in": {"manufacturer": "AUO", "model": "0x2036", "map": "laptop"},
    "work": [
      {"manufacturer": "DEL", "model": "U2720Q", "serial": "A1"},
      {"manufacturer": "DEL", "model": "U2720Q", "serial": "B2"}
    ],
    "home": [
      {"manufacturer": "LG", "model": "27UK850", "serial": "C3"}
    ]
  },
  "work": [
    {"name": "Firefox", "xoff": 0, "yoff": 0, "width": 1920, "height": 1080, "desk": 0},
    {"name": "Slack", "xoff": 1920, "yoff": 0, "width": 1280, "height": 1024, "desk": 1}
  ],
  "home": [
    {"name": "Firefox", "xoff": 100, "yoff": 50, "width": 2560, "height": 1340, "desk": 0}
  ],
  "laptop": []
}`

func TestParseSampleConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(cfg.Profiles))
	}

	rules, err := cfg.Profile("work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 work rules, got %d", len(rules))
	}
	if rules[0].Name != "Firefox" || rules[1].Name != "Slack" {
		t.Fatalf("rule order not preserved: %q, %q", rules[0].Name, rules[1].Name)
	}
	if rules[1].XOff != 1920 || rules[1].Desk != 1 {
		t.Fatalf("unexpected rule fields: %+v", rules[1])
	}

	bi := cfg.MonMap.BuiltIn
	if bi.Manufacturer != "AUO" || bi.Model != "0x2036" || bi.Map != "laptop" {
		t.Fatalf("unexpected built-in entry: %+v", bi)
	}
}

func TestParsePreservesSetOrder(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.MonMap.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(cfg.MonMap.Sets))
	}
	if cfg.MonMap.Sets[0].Name != "work" || cfg.MonMap.Sets[1].Name != "home" {
		t.Fatalf("set order not preserved: %q, %q", cfg.MonMap.Sets[0].Name, cfg.MonMap.Sets[1].Name)
	}

	want := monitors.Identity{Manufacturer: "DEL", Model: "U2720Q", Serial: "B2"}
	if cfg.MonMap.Sets[0].Monitors[1] != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.MonMap.Sets[0].Monitors[1])
	}
}

func TestParseDefaultShellClasses(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ShellClasses) != 1 || cfg.ShellClasses[0] != "gnome-terminal" {
		t.Fatalf("unexpected default shell classes: %v", cfg.ShellClasses)
	}
}

func TestParseCustomShellClasses(t *testing.T) {
	conf := `{
  "_mon_map_": {"built in": {"manufacturer": "AUO", "model": "0x2036", "map": "laptop"}},
  "_shell_classes_": ["alacritty", "kitty"],
  "laptop": []
}`
	cfg, err := Parse([]byte(conf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ShellClasses) != 2 || cfg.ShellClasses[0] != "alacritty" {
		t.Fatalf("unexpected shell classes: %v", cfg.ShellClasses)
	}
}

func TestProfileNotFound(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = cfg.Profile("gym")
	if err == nil {
		t.Fatalf("expected an error for a missing profile")
	}
	// The message must tell the user what is available.
	for _, name := range []string{"home", "laptop", "work"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not mention available profile %q", err, name)
		}
	}
}

func TestParseMissingMonMap(t *testing.T) {
	if _, err := Parse([]byte(`{"work": []}`)); err == nil {
		t.Fatalf("expected an error for a config without the monitor map")
	}
}

func TestParseMissingBuiltIn(t *testing.T) {
	conf := `{"_mon_map_": {"work": [{"manufacturer": "DEL", "model": "U2720Q"}]}}`
	if _, err := Parse([]byte(conf)); err == nil {
		t.Fatalf("expected an error for a monitor map without the built in entry")
	}
}

func TestValidateRejectsBadRule(t *testing.T) {
	conf := `{
  "_mon_map_": {"built in": {"manufacturer": "AUO", "model": "0x2036", "map": "laptop"}},
  "work": [{"name": "Firefox", "xoff": 0, "yoff": 0, "width": 0, "height": 1080, "desk": 0}]
}`
	if _, err := Parse([]byte(conf)); err == nil {
		t.Fatalf("expected an error for a rule with zero width")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adjwin.json")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cfg.Profile("home"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
