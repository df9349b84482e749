package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crustymonkey/linux-auto-win/internal/monitors"
)

const (
	// monMapKey is the distinguished top-level key holding the monitor
	// identity map; every other top-level key names a layout profile.
	monMapKey = "_mon_map_"
	// shellClassesKey optionally lists process names treated as terminal
	// emulators.
	shellClassesKey = "_shell_classes_"
	// builtInKey marks the built-in panel entry inside the monitor map.
	builtInKey = "built in"
)

// DefaultShellClasses is used when the config carries no _shell_classes_ key.
var DefaultShellClasses = []string{"gnome-terminal"}

// Rule is one placement instruction: the first open window whose title
// contains Name is moved to (XOff, YOff), resized to Width x Height, and
// sent to desktop Desk.
type Rule struct {
	Name   string `yaml:"name"`
	XOff   int    `yaml:"xoff"`
	YOff   int    `yaml:"yoff"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Desk   int    `yaml:"desk"`
}

// Config is the parsed ~/.adjwin.json: layout profiles keyed by state name
// plus the monitor identity map shared with the watcher.
type Config struct {
	Profiles     map[string][]Rule
	MonMap       monitors.MonitorMap
	ShellClasses []string
}

// DefaultPath returns ~/.adjwin.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".adjwin.json"), nil
}

// Load reads the config from the standard location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file. The on-disk format is the
// original JSON layout; since JSON is a YAML subset the same loader accepts
// hand-written YAML too. The monitor map is walked node by node because set
// order is the classifier tie-break and must survive decoding.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config bytes. Split from LoadFromPath so tests can feed
// literals.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping of profile names")
	}

	cfg := &Config{
		Profiles:     make(map[string][]Rule),
		ShellClasses: DefaultShellClasses,
	}

	sawMonMap := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]

		switch key {
		case monMapKey:
			mm, err := decodeMonitorMap(val)
			if err != nil {
				return nil, err
			}
			cfg.MonMap = mm
			sawMonMap = true
		case shellClassesKey:
			if err := val.Decode(&cfg.ShellClasses); err != nil {
				return nil, fmt.Errorf("%s: %w", shellClassesKey, err)
			}
		default:
			var rules []Rule
			if err := val.Decode(&rules); err != nil {
				return nil, fmt.Errorf("profile %q: %w", key, err)
			}
			cfg.Profiles[key] = rules
		}
	}

	if !sawMonMap {
		return nil, fmt.Errorf("missing %q key", monMapKey)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeMonitorMap(node *yaml.Node) (monitors.MonitorMap, error) {
	var mm monitors.MonitorMap
	if node.Kind != yaml.MappingNode {
		return mm, fmt.Errorf("%s must be a mapping", monMapKey)
	}

	sawBuiltIn := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		if key == builtInKey {
			var entry struct {
				Manufacturer string `yaml:"manufacturer"`
				Model        string `yaml:"model"`
				Serial       string `yaml:"serial"`
				Map          string `yaml:"map"`
			}
			if err := val.Decode(&entry); err != nil {
				return mm, fmt.Errorf("%s %q: %w", monMapKey, key, err)
			}
			mm.BuiltIn = monitors.BuiltInEntry{
				Identity: monitors.Identity{
					Manufacturer: entry.Manufacturer,
					Model:        entry.Model,
					Serial:       entry.Serial,
				},
				Map: entry.Map,
			}
			sawBuiltIn = true
			continue
		}

		var ids []monitors.Identity
		if err := val.Decode(&ids); err != nil {
			return mm, fmt.Errorf("%s %q: %w", monMapKey, key, err)
		}
		mm.Sets = append(mm.Sets, monitors.NamedSet{Name: key, Monitors: ids})
	}

	if !sawBuiltIn {
		return mm, fmt.Errorf("%s is missing the %q entry", monMapKey, builtInKey)
	}
	return mm, nil
}

// Validate checks structural invariants the matching code relies on.
func (c *Config) Validate() error {
	bi := c.MonMap.BuiltIn
	if bi.Manufacturer == "" || bi.Model == "" {
		return fmt.Errorf("%s %q entry needs manufacturer and model", monMapKey, builtInKey)
	}
	if bi.Map == "" {
		return fmt.Errorf("%s %q entry needs a map state name", monMapKey, builtInKey)
	}

	for _, set := range c.MonMap.Sets {
		if len(set.Monitors) == 0 {
			return fmt.Errorf("%s %q lists no monitors", monMapKey, set.Name)
		}
		for i, id := range set.Monitors {
			if id.Manufacturer == "" || id.Model == "" {
				return fmt.Errorf("%s %q monitor %d needs manufacturer and model", monMapKey, set.Name, i)
			}
		}
	}

	for name, rules := range c.Profiles {
		for i, r := range rules {
			if r.Name == "" {
				return fmt.Errorf("profile %q rule %d has an empty name", name, i)
			}
			if r.Width <= 0 || r.Height <= 0 {
				return fmt.Errorf("profile %q rule %d (%s): width and height must be positive", name, i, r.Name)
			}
			if r.Desk < 0 {
				return fmt.Errorf("profile %q rule %d (%s): desk must be >= 0", name, i, r.Name)
			}
		}
	}
	return nil
}

// Profile returns the rule list for name. A missing profile is a usage
// error, so the message lists what is available.
func (c *Config) Profile(name string) ([]Rule, error) {
	rules, ok := c.Profiles[name]
	if !ok {
		names := make([]string, 0, len(c.Profiles))
		for n := range c.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("profile %q not found; must be one of: %s", name, strings.Join(names, ", "))
	}
	return rules, nil
}
