package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// styles are the lipgloss styles of a pretty handler, bound to the color
// profile of its output.
type styles struct {
	time, key, source, message lipgloss.Style
	trace, debug, info, warn   lipgloss.Style
	error                      lipgloss.Style
}

func makeStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	level := r.NewStyle().Bold(true).Width(5)

	return styles{
		time:    r.NewStyle().Faint(true),
		key:     r.NewStyle().Foreground(lipgloss.Color("8")),
		source:  r.NewStyle().Faint(true).Italic(true),
		message: r.NewStyle().Bold(true),
		trace:   level.Foreground(lipgloss.Color("5")),
		debug:   level.Foreground(lipgloss.Color("4")),
		info:    level.Foreground(lipgloss.Color("2")),
		warn:    level.Foreground(lipgloss.Color("3")),
		error:   level.Foreground(lipgloss.Color("1")),
	}
}

func (s styles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.error
	case l >= slog.LevelWarn:
		return s.warn
	case l >= slog.LevelInfo:
		return s.info
	case l >= slog.LevelDebug:
		return s.debug
	default:
		return s.trace
	}
}

// prettyHandler writes one styled line per record:
//
//	TIME LEVEL [SOURCE] MESSAGE key=value ...
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	layout string
	styles styles
	prefix string // group prefix for attributes added later
	attrs  string // preformatted attributes from WithAttrs
}

func newPrettyHandler(w io.Writer, layout string, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		layout: layout,
		styles: makeStyles(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if h.layout != "" && !r.Time.IsZero() {
		buf.WriteString(h.styles.time.Render(r.Time.Format(h.layout)))
		buf.WriteByte(' ')
	}

	name := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(h.styles.level(r.Level).Render(name))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(h.styles.source.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.message.Render(r.Message))
	buf.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	var buf bytes.Buffer
	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}

	c.attrs += buf.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix += name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(quoteValue(a.Value.String()))
}

// quoteValue quotes s when it would otherwise be ambiguous in key=value
// output.
func quoteValue(s string) string {
	if s == "" {
		return `""`
	}

	for _, r := range s {
		if unicode.IsSpace(r) || r == '=' || r == '"' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}

	return s
}
