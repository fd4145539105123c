package source

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"slices"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/envlit/pkg"
)

// Dependency records one name queried through a [Tracked] source.
type Dependency struct {
	Key     string `yaml:"key"`
	Present bool   `yaml:"present"`
	// Digest is the hex SHA-256 of the value, empty when not present.
	Digest string `yaml:"digest,omitempty"`
}

// Manifest is the set of dependencies of a build, sorted by key.
type Manifest struct {
	Dependencies []Dependency `yaml:"dependencies"`
}

// Tracked wraps a source and records every name queried through it. It is
// safe for concurrent use if the wrapped source is.
type Tracked struct {
	src  Source
	mu   sync.Mutex
	deps map[string]Dependency
}

// Track returns a Tracked source wrapping src.
func Track(src Source) *Tracked {
	return &Tracked{src: src, deps: make(map[string]Dependency)}
}

// Lookup queries the wrapped source and records the result.
func (t *Tracked) Lookup(name string) (string, bool) {
	v, ok := t.src.Lookup(name)

	t.mu.Lock()
	t.deps[name] = makeDependency(name, v, ok)
	t.mu.Unlock()

	return v, ok
}

// Keys returns the names of the wrapped source without recording them.
func (t *Tracked) Keys() []string { return Keys(t.src) }

// Manifest returns the dependencies recorded so far.
func (t *Tracked) Manifest() Manifest {
	t.mu.Lock()
	defer t.mu.Unlock()

	deps := make([]Dependency, 0, len(t.deps))
	for _, d := range t.deps {
		deps = append(deps, d)
	}

	slices.SortFunc(deps, func(a, b Dependency) int { return cmp.Compare(a.Key, b.Key) })

	return Manifest{Dependencies: deps}
}

// WriteManifest writes the recorded dependencies to w as YAML.
func (t *Tracked) WriteManifest(w io.Writer) error {
	return t.Manifest().Write(w)
}

// Write encodes m to w as YAML.
func (m Manifest) Write(w io.Writer) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	if _, err := w.Write(b); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// ReadManifest decodes a manifest written by [Manifest.Write].
func ReadManifest(r io.Reader) (Manifest, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Manifest{}, pkg.ErrReadInput.Wrap(err)
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, pkg.ErrYAMLUnmarshal.Wrap(err)
	}

	return m, nil
}

// Stale returns the dependencies of m whose presence or value in src
// differs from what was recorded.
func (m Manifest) Stale(src Source) []Dependency {
	var stale []Dependency

	for _, d := range m.Dependencies {
		v, ok := src.Lookup(d.Key)
		if makeDependency(d.Key, v, ok) != d {
			stale = append(stale, d)
		}
	}

	return stale
}

func makeDependency(name, value string, ok bool) Dependency {
	d := Dependency{Key: name, Present: ok}

	if ok {
		sum := sha256.Sum256([]byte(value))
		d.Digest = hex.EncodeToString(sum[:])
	}

	return d
}
