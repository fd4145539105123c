package rewrite

import (
	"go/token"
	"log/slog"

	"github.com/ardnew/envlit/lit"
)

// Kind is the syntactic form of a materialization site.
type Kind int

const (
	// Item is a declaration decorated with a directive comment.
	Item Kind = iota + 1
	// Inline is a marker call.
	Inline
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Item:
		return "item"
	case Inline:
		return "inline"
	default:
		return "unknown"
	}
}

// Site is one materialization site of a file.
type Site struct {
	Kind Kind
	Pos  token.Position

	// Key is the resolved lookup key, empty when it could not be resolved.
	Key string

	// Hit reports whether the key was present.
	Hit bool

	// Category is the category of the synthesized literal on a hit.
	Category lit.Category

	// Text is the replacement text on a hit.
	Text string

	// Err is the failure of this site, if any.
	Err error
}

// LogValue implements slog.LogValuer.
func (s Site) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", s.Kind.String()),
		slog.String("pos", s.Pos.String()),
		slog.String("key", s.Key),
		slog.Bool("hit", s.Hit),
	}

	if s.Hit {
		attrs = append(attrs, slog.String("category", s.Category.String()))
	}

	return slog.GroupValue(attrs...)
}

// Result is the outcome of rewriting one file.
type Result struct {
	Filename string

	// Output is the rewritten source. It equals the input when Changed is
	// false, and is nil when rewriting failed.
	Output []byte

	// Changed reports whether any replacement was made.
	Changed bool

	// Sites lists every site in source order.
	Sites []Site
}

// Hits returns the number of sites whose key was present.
func (r Result) Hits() int {
	n := 0

	for _, s := range r.Sites {
		if s.Hit {
			n++
		}
	}

	return n
}
