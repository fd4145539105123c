package source

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTracked(t *testing.T) {
	tr := Track(NewMap().Set("HOST", "example.com").Set("EMPTY", "").Build())

	for _, name := range []string{"HOST", "MISSING", "EMPTY", "HOST"} {
		tr.Lookup(name)
	}

	want := Manifest{Dependencies: []Dependency{
		{Key: "EMPTY", Present: true, Digest: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{Key: "HOST", Present: true, Digest: "a379a6f6eeafb9a55e378c118034e2751e682fab9f2d30ab13d2125586ce1947"},
		{Key: "MISSING"},
	}}

	if diff := cmp.Diff(want, tr.Manifest()); diff != "" {
		t.Errorf("Manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestTracked_Concurrent(t *testing.T) {
	tr := Track(NewMap().Set("A", "1").Build())

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			tr.Lookup("A")
			tr.Lookup("B")
		})
	}

	wg.Wait()

	if n := len(tr.Manifest().Dependencies); n != 2 {
		t.Errorf("recorded %d dependencies, want 2", n)
	}
}

func TestManifest_RoundTrip(t *testing.T) {
	tr := Track(NewMap().Set("A", "1").Set("B", "2").Build())
	tr.Lookup("A")
	tr.Lookup("B")
	tr.Lookup("C")

	var buf bytes.Buffer
	if err := tr.WriteManifest(&buf); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), "dependencies:\n") {
		t.Errorf("unexpected manifest:\n%s", buf.String())
	}

	m, err := ReadManifest(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(tr.Manifest(), m); diff != "" {
		t.Errorf("ReadManifest mismatch (-want +got):\n%s", diff)
	}

	if stale := m.Stale(NewMap().Set("A", "1").Set("B", "2").Build()); len(stale) != 0 {
		t.Errorf("Stale(same source) = %v", stale)
	}

	stale := m.Stale(NewMap().Set("A", "1").Set("C", "3").Build())

	var keys []string
	for _, d := range stale {
		keys = append(keys, d.Key)
	}

	if diff := cmp.Diff([]string{"B", "C"}, keys); diff != "" {
		t.Errorf("Stale keys mismatch (-want +got):\n%s", diff)
	}
}

func TestReadManifest_Malformed(t *testing.T) {
	if _, err := ReadManifest(strings.NewReader("dependencies: [")); err == nil {
		t.Error("ReadManifest accepted malformed YAML")
	}
}
