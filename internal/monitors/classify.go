package monitors

// BuiltInEntry names the non-removable panel and the state used when it is
// the only attached display.
type BuiltInEntry struct {
	Identity
	Map string
}

// NamedSet is one configured external-monitor combination. Every listed
// monitor must be simultaneously present for the set to match.
type NamedSet struct {
	Name     string
	Monitors []Identity
}

// MonitorMap is the full monitor-identity configuration. Set order is
// significant: when more than one set could match, the first one listed in
// the config wins.
type MonitorMap struct {
	BuiltIn BuiltInEntry
	Sets    []NamedSet
}

// Classify maps the currently attached monitors to a configured state name.
//
// A lone built-in monitor short-circuits to the built-in map name before any
// set comparison. Otherwise the built-in is discarded (a docked laptop with
// its lid open must still match an external-only set) and the remaining
// identities are compared against each configured set in order: equal
// cardinality, every identity present, enumeration order irrelevant.
//
// Returns ok=false when nothing matches; the caller decides what sentinel
// that maps to.
func Classify(mons []Monitor, mm MonitorMap) (string, bool) {
	if len(mons) == 1 && mons[0].BuiltIn {
		return mm.BuiltIn.Map, true
	}

	var ext []Identity
	for _, m := range mons {
		if !m.BuiltIn {
			ext = append(ext, m.Identity)
		}
	}

	for _, set := range mm.Sets {
		if identitySetsEqual(ext, set.Monitors) {
			return set.Name, true
		}
	}
	return "", false
}

func identitySetsEqual(got, want []Identity) bool {
	if len(got) != len(want) {
		return false
	}
	for _, g := range got {
		found := false
		for _, w := range want {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
