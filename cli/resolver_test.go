package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/envlit/pkg"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}

	return v
}

func TestResolve(t *testing.T) {
	const file = `
log_level: debug
log-pretty: false
pprof-mode: cpu
jobs: 4
set:
  - A=1
  - B=2
`

	r, err := resolve(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log_level", "debug"},
		{"log-pretty", false},
		{"pprof-mode", "cpu"},
		{"jobs", "4"},
		{"set", []any{"A=1", "B=2"}},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, resolveFlag(t, r, tt.flag)); diff != "" {
				t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Empty(t *testing.T) {
	r, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if v := resolveFlag(t, r, "log-level"); v != nil {
		t.Errorf("Resolve = %v, want nil", v)
	}
}

func TestResolve_Malformed(t *testing.T) {
	_, err := resolve(strings.NewReader("log-level: [unterminated\n"))
	if !errors.Is(err, pkg.ErrYAMLUnmarshal) {
		t.Errorf("error = %v, want ErrYAMLUnmarshal", err)
	}
}
