package cmd

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
	"github.com/ardnew/envlit/rewrite"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// stdin is the reader behind [stdinName].
//
//nolint:gochecknoglobals
var stdin io.Reader = os.Stdin

// input is one Go source file to process.
type input struct {
	path string
}

func (in input) isStdin() bool { return in.path == stdinName }

// name is the file name used in positions and messages.
func (in input) name() string {
	if in.isStdin() {
		return "<stdin>"
	}

	return in.path
}

func (in input) read() ([]byte, error) {
	if in.isStdin() {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(in.path)
}

// fileKey uniquely identifies a file by its device and inode numbers, so
// the same file named through a symlink or another relative path is
// processed once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// expand resolves command-line arguments to Go source files.
//
// A file is used as given. A directory contributes its .go files other than
// tests, and a path ending in "/..." also walks its subdirectories, skipping
// testdata, vendor, and names starting with "." or "_". Files are
// deduplicated by device and inode. Every "-" selects standard input, which
// is placed last.
func expand(args []string) ([]input, error) {
	var (
		inputs   []input
		useStdin bool
	)

	seen := make(map[fileKey]struct{})
	seenPath := make(map[string]struct{})

	add := func(path string) {
		if info, err := os.Stat(path); err == nil {
			if key, ok := makeFileKey(info); ok {
				if _, dup := seen[key]; dup {
					return
				}

				seen[key] = struct{}{}
			}
		}

		if abs, err := filepath.Abs(path); err == nil {
			if _, dup := seenPath[abs]; dup {
				return
			}

			seenPath[abs] = struct{}{}
		}

		inputs = append(inputs, input{path: path})
	}

	for _, arg := range args {
		if arg == stdinName {
			useStdin = true

			continue
		}

		root, recursive := strings.CutSuffix(arg, "/...")
		if recursive && root == "" {
			root = "."
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		if !info.IsDir() {
			add(arg)

			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path == root {
					return nil
				}

				if !recursive || skipDir(d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if isSourceFile(d.Name()) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}
	}

	if useStdin {
		inputs = append(inputs, input{path: stdinName})
	}

	if len(inputs) == 0 {
		return nil, ErrNoInput.With(slog.Any("args", args))
	}

	log.Trace("inputs", slog.Int("count", len(inputs)))

	return inputs, nil
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}

// outcome is the result of rewriting one input.
type outcome struct {
	input  input
	src    []byte
	result rewrite.Result
	err    error
}

// rewriteAll rewrites inputs concurrently, at most GOMAXPROCS at a time.
// Outcomes are returned in input order; a failure of one input does not
// stop the others.
func rewriteAll(ctx context.Context, r *rewrite.Rewriter, inputs []input) []outcome {
	outcomes := make([]outcome, len(inputs))

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, in := range inputs {
		g.Go(func() error {
			o := outcome{input: in}

			o.src, o.err = in.read()
			if o.err != nil {
				o.err = pkg.ErrReadInput.Wrap(o.err)
			} else {
				o.result, o.err = r.Source(ctx, in.name(), o.src)
			}

			outcomes[i] = o

			return nil
		})
	}

	// Failures stay with their outcome; the group only bounds concurrency,
	// so every goroutine returns nil.
	_ = g.Wait()

	return outcomes
}
