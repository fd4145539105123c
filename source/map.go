package source

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
)

// Map is an immutable in-memory source.
type Map struct {
	m map[string]string
}

// Lookup returns the value stored for name.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m.m[name]

	return v, ok
}

// Keys returns the names of the entries, sorted.
func (m Map) Keys() []string { return slices.Sorted(maps.Keys(m.m)) }

// Len returns the number of entries.
func (m Map) Len() int { return len(m.m) }

// MapBuilder accumulates entries for a [Map].
type MapBuilder struct {
	m map[string]string
}

// NewMap returns an empty MapBuilder.
func NewMap() *MapBuilder {
	return &MapBuilder{m: make(map[string]string)}
}

// Set stores value for name, replacing any previous value.
func (b *MapBuilder) Set(name, value string) *MapBuilder {
	b.m[name] = value

	return b
}

// Build returns a Map holding a copy of the entries set so far.
func (b *MapBuilder) Build() Map {
	return Map{m: maps.Clone(b.m)}
}

// ParseAssignments builds a Map from KEY=VALUE strings. The value is
// everything after the first '='; it may be empty. Later assignments of the
// same key win.
func ParseAssignments(assignments ...string) (Map, error) {
	b := NewMap()

	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return Map{}, pkg.ErrAssignment.Wrapf("%q: want KEY=VALUE", a)
		}

		log.Trace("assignment", slog.String("key", name))
		b.Set(name, value)
	}

	return b.Build(), nil
}
