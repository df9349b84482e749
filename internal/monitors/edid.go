package monitors

import (
	"regexp"
	"strings"
)

// serialPattern matches the serial-number line of an edid-decode dump, e.g.
// `Serial Number: 'ABC123'` or `Display Product Serial Number: XYZ`.
var serialPattern = regexp.MustCompile(`(?i)serial\s+number:\s+['"]?([^'"\s]+)`)

// ParseDescriptor extracts a monitor identity from one edid-decode dump.
//
// The dump is scanned line by line, accumulating manufacturer, model, and
// serial. A serial line is the strongest termination signal: a descriptor
// carries at most one, so the record is emitted on the first line after it
// and anything further is noise. Built-in panels typically omit a serial, so
// when the accumulated manufacturer+model equal the configured built-in the
// record is emitted with BuiltIn set instead.
//
// Returns ok=false when the descriptor never yields enough fields; the
// output is treated as absent, not as an error.
func ParseDescriptor(text string, builtIn Identity) (Monitor, bool) {
	var id Identity

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "manufacturer:"):
			if f := strings.Fields(line); len(f) >= 2 {
				id.Manufacturer = f[1]
			}
		case strings.Contains(lower, "model:"):
			if f := strings.Fields(line); len(f) >= 2 {
				id.Model = f[1]
			}
		case serialPattern.MatchString(line):
			id.Serial = serialPattern.FindStringSubmatch(line)[1]
		case id.Serial != "":
			return Monitor{Identity: id}, true
		case isBuiltIn(id, builtIn):
			return Monitor{Identity: id, BuiltIn: true}, true
		}
	}

	// Scan ran off the end of the dump. A serial with no trailing line is
	// still a complete record, and an external panel that carries no serial
	// at all is emitted with an empty one rather than silently dropped;
	// matching it then requires a config entry with an empty serial too.
	if id.Serial != "" {
		return Monitor{Identity: id}, true
	}
	if isBuiltIn(id, builtIn) {
		return Monitor{Identity: id, BuiltIn: true}, true
	}
	if id.Manufacturer != "" && id.Model != "" {
		return Monitor{Identity: id}, true
	}
	return Monitor{}, false
}

func isBuiltIn(id, builtIn Identity) bool {
	return id.Manufacturer != "" && id.Model != "" &&
		id.Manufacturer == builtIn.Manufacturer && id.Model == builtIn.Model
}
