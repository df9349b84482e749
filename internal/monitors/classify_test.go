package monitors

import "testing"

var (
	monA = Identity{Manufacturer: "DEL", Model: "U2720Q", Serial: "A1"}
	monB = Identity{Manufacturer: "DEL", Model: "U2720Q", Serial: "B2"}
	monC = Identity{Manufacturer: "LG", Model: "27UK850", Serial: "C3"}
)

func testMap() MonitorMap {
	return MonitorMap{
		BuiltIn: BuiltInEntry{
			Identity: Identity{Manufacturer: "AUO", Model: "0x2036"},
			Map:      "laptop",
		},
		Sets: []NamedSet{
			{Name: "work", Monitors: []Identity{monA, monB}},
			{Name: "home", Monitors: []Identity{monC}},
		},
	}
}

func TestClassifyBuiltInShortCircuit(t *testing.T) {
	mm := testMap()
	// Even when the built-in triple also appears in a named set, a lone
	// built-in must return the built-in map name.
	mm.Sets = append([]NamedSet{{
		Name:     "trap",
		Monitors: []Identity{{Manufacturer: "AUO", Model: "0x2036"}},
	}}, mm.Sets...)

	mons := []Monitor{{Identity: Identity{Manufacturer: "AUO", Model: "0x2036"}, BuiltIn: true}}
	state, ok := Classify(mons, mm)
	if !ok || state != "laptop" {
		t.Fatalf("expected laptop, got %q (ok=%v)", state, ok)
	}
}

func TestClassifyIgnoresBuiltInWhenDocked(t *testing.T) {
	mons := []Monitor{
		{Identity: monA},
		{Identity: monB},
		{Identity: Identity{Manufacturer: "AUO", Model: "0x2036"}, BuiltIn: true},
	}
	state, ok := Classify(mons, testMap())
	if !ok || state != "work" {
		t.Fatalf("expected work, got %q (ok=%v)", state, ok)
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	forward := []Monitor{{Identity: monA}, {Identity: monB}}
	backward := []Monitor{{Identity: monB}, {Identity: monA}}

	s1, ok1 := Classify(forward, testMap())
	s2, ok2 := Classify(backward, testMap())
	if !ok1 || !ok2 || s1 != s2 {
		t.Fatalf("enumeration order changed the result: %q/%v vs %q/%v", s1, ok1, s2, ok2)
	}
	if s1 != "work" {
		t.Fatalf("expected work, got %q", s1)
	}
}

func TestClassifyExactCardinality(t *testing.T) {
	// A subset of a configured set must not match it.
	mons := []Monitor{{Identity: monA}}
	if state, ok := Classify(mons, testMap()); ok {
		t.Fatalf("subset matched %q, want no match", state)
	}

	// Nor a superset.
	mons = []Monitor{{Identity: monA}, {Identity: monB}, {Identity: monC}}
	if state, ok := Classify(mons, testMap()); ok {
		t.Fatalf("superset matched %q, want no match", state)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	mons := []Monitor{{Identity: Identity{Manufacturer: "NEC", Model: "EA271U", Serial: "Z9"}}}
	if state, ok := Classify(mons, testMap()); ok {
		t.Fatalf("expected no match, got %q", state)
	}
}

func TestClassifyFirstConfiguredSetWins(t *testing.T) {
	mm := testMap()
	// Duplicate entry for the same set under a different name; config order
	// is the tie-break.
	mm.Sets = append(mm.Sets, NamedSet{Name: "work-copy", Monitors: []Identity{monA, monB}})

	state, ok := Classify([]Monitor{{Identity: monB}, {Identity: monA}}, mm)
	if !ok || state != "work" {
		t.Fatalf("expected work (first configured), got %q (ok=%v)", state, ok)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	mons := []Monitor{{Identity: monC}}
	s1, ok1 := Classify(mons, testMap())
	s2, ok2 := Classify(mons, testMap())
	if s1 != s2 || ok1 != ok2 {
		t.Fatalf("classification is not stable: %q/%v vs %q/%v", s1, ok1, s2, ok2)
	}
	if s1 != "home" {
		t.Fatalf("expected home, got %q", s1)
	}
}
