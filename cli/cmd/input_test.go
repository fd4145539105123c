package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/envlit/pkg"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"a.go":               "package a\n",
		"a_test.go":          "package a\n",
		"notes.txt":          "",
		"sub/b.go":           "package sub\n",
		"sub/testdata/c.go":  "package c\n",
		"sub/.hidden/d.go":   "package d\n",
		"sub/_skip/e.go":     "package e\n",
		"vendor/v/f.go":      "package v\n",
		"sub/deeper/deep.go": "package deeper\n",
	})

	rel := func(paths ...string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			out[i] = filepath.Join(dir, p)
		}

		return out
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "directory",
			args: []string{dir},
			want: rel("a.go"),
		},
		{
			name: "recursive",
			args: []string{dir + "/..."},
			want: rel("a.go", "sub/b.go", "sub/deeper/deep.go"),
		},
		{
			name: "file",
			args: []string{filepath.Join(dir, "sub", "b.go")},
			want: rel("sub/b.go"),
		},
		{
			name: "duplicates",
			args: []string{filepath.Join(dir, "a.go"), dir, filepath.Join(dir, "sub", "..", "a.go")},
			want: rel("a.go"),
		},
		{
			name: "stdin last",
			args: []string{"-", filepath.Join(dir, "a.go"), "-"},
			want: append(rel("a.go"), "-"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs, err := expand(tt.args)
			if err != nil {
				t.Fatal(err)
			}

			got := make([]string, len(inputs))
			for i, in := range inputs {
				got[i] = in.path
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("expand mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpand_Symlink(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "package a\n"})

	link := filepath.Join(dir, "link.go")
	if err := os.Symlink(filepath.Join(dir, "a.go"), link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	inputs, err := expand([]string{filepath.Join(dir, "a.go"), link})
	if err != nil {
		t.Fatal(err)
	}

	if len(inputs) != 1 {
		t.Errorf("expand = %v, want one input", inputs)
	}
}

func TestExpand_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := expand([]string{filepath.Join(dir, "missing.go")}); !errors.Is(err, pkg.ErrReadInput) {
		t.Errorf("missing file error = %v", err)
	}

	if _, err := expand([]string{dir}); !errors.Is(err, ErrNoInput) {
		t.Errorf("empty directory error = %v", err)
	}
}

func TestInput_Stdin(t *testing.T) {
	old := stdin
	stdin = strings.NewReader("package p\n")

	t.Cleanup(func() { stdin = old })

	in := input{path: stdinName}

	if in.name() != "<stdin>" || !in.isStdin() {
		t.Errorf("name() = %q", in.name())
	}

	b, err := in.read()
	if err != nil || string(b) != "package p\n" {
		t.Errorf("read() = %q, %v", b, err)
	}
}

func TestRewriteAll(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go":   portSource,
		"bad.go": "package config\n\n//envlit:item\nfunc F() {}\n",
		"c.go":   portSource,
	})

	inputs := []input{
		{path: filepath.Join(dir, "a.go")},
		{path: filepath.Join(dir, "missing.go")},
		{path: filepath.Join(dir, "bad.go")},
		{path: filepath.Join(dir, "c.go")},
	}

	ctx, _ := testContext(t, portEnv())
	r, _ := newRewriter(ctx)

	outcomes := rewriteAll(ctx, r, inputs)
	if len(outcomes) != len(inputs) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(inputs))
	}

	for i, o := range outcomes {
		if o.input != inputs[i] {
			t.Errorf("outcome %d is for %s, want %s", i, o.input.path, inputs[i].path)
		}
	}

	for _, i := range []int{0, 3} {
		if outcomes[i].err != nil {
			t.Errorf("%s: %v", inputs[i].path, outcomes[i].err)
		}

		if got := string(outcomes[i].result.Output); got != portRewritten {
			t.Errorf("%s output mismatch:\n%s", inputs[i].path, got)
		}
	}

	if !errors.Is(outcomes[1].err, pkg.ErrReadInput) {
		t.Errorf("missing file error = %v, want ErrReadInput", outcomes[1].err)
	}

	if outcomes[2].err == nil {
		t.Error("directive on a function did not fail")
	}
}
