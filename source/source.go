// Package source provides the key-value sources that supply replacement
// text to the literal engine.
//
// Every source implements [Source], which is identical to the engine's
// lookup interface. Sources compose: [Chain] queries several in order, and
// [Tracked] records every query made through it so that a build can be
// re-run when a recorded value changes.
package source

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Source answers lookups by name. The second result reports whether the
// name is present; an empty value that is present is distinct from a
// missing one.
type Source interface {
	Lookup(name string) (value string, ok bool)
}

// Lister is implemented by sources that can enumerate their names.
type Lister interface {
	Keys() []string
}

// Keys returns the sorted names of src, or nil when src cannot enumerate
// them.
func Keys(src Source) []string {
	if l, ok := src.(Lister); ok {
		return l.Keys()
	}

	return nil
}

// Process is the environment of the running process.
type Process struct{}

// Lookup returns the value of the environment variable name.
func (Process) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Keys returns the names of the process environment, sorted.
func (Process) Keys() []string {
	names := make(map[string]struct{})

	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); name != "" {
			names[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(names))
}

// Chain is a sequence of sources queried in order. The first source
// containing a name wins.
type Chain []Source

// Lookup returns the value of name from the first source that contains it.
func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}

		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}

	return "", false
}

// Keys returns the union of the names of every source that can enumerate
// them, sorted.
func (c Chain) Keys() []string {
	names := make(map[string]struct{})

	for _, src := range c {
		for _, name := range Keys(src) {
			names[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(names))
}
