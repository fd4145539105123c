package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/envlit/rewrite"
	"github.com/ardnew/envlit/source"
)

// report writes the per-site diagnostics of [Check].
type report struct {
	w       io.Writer
	keys    []string
	suggest int
	style   reportStyle

	sites, hits, misses, failed int
}

type reportStyle struct {
	pos, key, hit, miss, fail, hint lipgloss.Style
}

// newReport returns a report writing to w. Missing keys are matched against
// keys to suggest at most suggest alternatives.
func newReport(w io.Writer, keys []string, suggest int) *report {
	r := lipgloss.NewRenderer(w)

	return &report{
		w:       w,
		keys:    keys,
		suggest: suggest,
		style: reportStyle{
			pos:  r.NewStyle().Bold(true),
			key:  r.NewStyle().Foreground(lipgloss.Color("6")),
			hit:  r.NewStyle().Foreground(lipgloss.Color("2")),
			miss: r.NewStyle().Foreground(lipgloss.Color("3")),
			fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			hint: r.NewStyle().Faint(true),
		},
	}
}

// file reports every site of one outcome, or the failure of the whole file
// when it produced no sites.
func (r *report) file(o outcome) {
	if o.err != nil && len(o.result.Sites) == 0 {
		r.failed++
		r.line(o.input.name(), r.style.fail.Render("error")+": "+o.err.Error())

		return
	}

	for _, s := range o.result.Sites {
		r.site(o.src, s)
	}
}

func (r *report) site(src []byte, s rewrite.Site) {
	r.sites++

	pos := s.Pos.String()
	head := s.Kind.String() + " " + r.style.key.Render(s.Key)

	switch {
	case s.Err != nil:
		r.failed++

		msg := strings.TrimPrefix(s.Err.Error(), pos+": ")
		r.line(pos, s.Kind.String()+" "+r.style.fail.Render("error")+": "+msg)
		r.context(src, s.Pos.Line, s.Pos.Column)

	case s.Hit:
		r.hits++
		r.line(pos, head+" "+r.style.hit.Render("hit")+" "+s.Category.String()+" "+s.Text)

	default:
		r.misses++

		text := head + " " + r.style.miss.Render("miss")

		if alts := r.alternatives(s.Key); len(alts) > 0 {
			text += r.style.hint.Render(" (did you mean " + strings.Join(alts, ", ") + "?)")
		}

		r.line(pos, text)
	}
}

// alternatives returns the known keys closest to key.
func (r *report) alternatives(key string) []string {
	if r.suggest <= 0 || key == "" {
		return nil
	}

	matches := fuzzy.Find(key, r.keys)

	alts := make([]string, 0, min(len(matches), r.suggest))
	for _, m := range matches {
		if len(alts) == r.suggest {
			break
		}

		alts = append(alts, m.Str)
	}

	return alts
}

// context prints the source line of a failure with a caret under column.
func (r *report) context(src []byte, line, column int) {
	if line < 1 || column < 1 {
		return
	}

	lines := bytes.Split(src, []byte("\n"))
	if line > len(lines) {
		return
	}

	text := lines[line-1]

	// Keep tabs so the caret lines up with the text above it.
	indent := make([]byte, 0, column-1)
	for i := 0; i < column-1 && i < len(text); i++ {
		if text[i] == '\t' {
			indent = append(indent, '\t')
		} else {
			indent = append(indent, ' ')
		}
	}

	fmt.Fprintf(r.w, "\t%s\n\t%s%s\n", text, indent, r.style.fail.Render("^"))
}

func (r *report) line(pos, text string) {
	fmt.Fprintf(r.w, "%s: %s\n", r.style.pos.Render(pos), text)
}

// summary prints the site totals.
func (r *report) summary() {
	fmt.Fprintln(r.w, r.style.hint.Render(fmt.Sprintf(
		"%d sites, %d hits, %d misses, %d errors",
		r.sites, r.hits, r.misses, r.failed,
	)))
}

// stale reports a dependency whose value changed since it was recorded.
func (r *report) stale(name string, d source.Dependency) {
	recorded := "set"
	if !d.Present {
		recorded = "unset"
	}

	r.line(name, r.style.key.Render(d.Key)+" "+r.style.fail.Render("changed")+
		r.style.hint.Render(" (recorded "+recorded+")"))
}
