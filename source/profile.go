package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
)

// Profile is a source defined by a YAML document mapping names to
// expr-lang expressions:
//
//	GREETING: '"hello, " + env.USER'
//	PORT: 'env.PORT ?? 8080'
//	PATH_LIST: 'mung.prefix(env.PATH, "/opt/tool/bin")'
//	DEBUG: ~
//
// Expressions are compiled when the profile is loaded and evaluated on
// first lookup. They see the process environment as env (a missing
// variable is nil), the looked-up name as key, and the PATH-list helpers
// mung.prefix and mung.prefixif. A null expression or a nil result is a
// miss.
//
// Results become replacement text: strings are used as-is, numbers and
// booleans are formatted as Go literals, and lists become brace-enclosed
// element lists suitable for array references.
//
// Profile is safe for concurrent use.
type Profile struct {
	name    string
	env     map[string]any
	entries map[string]*entry
	logger  log.Logger

	mu     sync.Mutex
	failed map[string]error
}

type entry struct {
	source  string
	program *vm.Program

	once  sync.Once
	value string
	ok    bool
}

// ProfileOption configures a [Profile].
type ProfileOption func(*Profile)

// WithEnviron sets the environment visible to expressions as KEY=VALUE
// strings. The default is [os.Environ].
func WithEnviron(environ []string) ProfileOption {
	return func(p *Profile) {
		p.env = environMap(environ)
	}
}

// WithProfileLogger sets the logger that reports evaluation failures.
func WithProfileLogger(logger log.Logger) ProfileOption {
	return func(p *Profile) {
		p.logger = logger
	}
}

// LoadProfile reads the profile file at path.
func LoadProfile(path string, opts ...ProfileOption) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	return ParseProfile(path, f, opts...)
}

// ParseProfile reads a profile from r. The name identifies the profile in
// errors.
func ParseProfile(name string, r io.Reader, opts ...ProfileOption) (*Profile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, pkg.ErrYAMLUnmarshal.Wrapf("%s: %w", name, err)
	}

	p := &Profile{
		name:    name,
		entries: make(map[string]*entry, len(doc)),
		logger:  log.Default(),
		failed:  make(map[string]error),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.env == nil {
		p.env = environMap(os.Environ())
	}

	for key, v := range doc {
		e, err := p.compile(key, v)
		if err != nil {
			return nil, err
		}

		p.entries[key] = e
	}

	return p, nil
}

// compile prepares the entry for key. Non-string YAML scalars are
// expressions of their own text, so PORT: 8080 behaves as PORT: '8080'.
func (p *Profile) compile(key string, v any) (*entry, error) {
	e := &entry{}

	switch v := v.(type) {
	case nil:
		return e, nil
	case string:
		e.source = v
	case bool, int, int64, uint64, float64:
		e.source = fmt.Sprint(v)
	default:
		return nil, pkg.ErrExprCompile.Wrapf("%s: %s: expression must be a scalar, not %T", p.name, key, v)
	}

	program, err := expr.Compile(e.source, expr.Env(p.scope(key)))
	if err != nil {
		return nil, pkg.ErrExprCompile.Wrapf("%s: %s: %w", p.name, key, err)
	}

	e.program = program

	return e, nil
}

// scope returns the variables visible to the expression for key.
func (p *Profile) scope(key string) map[string]any {
	return map[string]any{
		"env": p.env,
		"key": key,
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
}

// Lookup evaluates the expression for name. An expression that fails is
// reported once through the logger and by [Profile.Err], and is a miss.
func (p *Profile) Lookup(name string) (string, bool) {
	e, ok := p.entries[name]
	if !ok {
		return "", false
	}

	e.once.Do(func() {
		if e.program == nil {
			return
		}

		var err error

		e.value, e.ok, err = p.evaluate(name, e)
		if err != nil {
			p.logger.Warn("profile expression failed",
				slog.String("profile", p.name),
				slog.String("key", name),
				slog.Any("error", err),
			)

			p.mu.Lock()
			p.failed[name] = err
			p.mu.Unlock()
		}
	})

	return e.value, e.ok
}

func (p *Profile) evaluate(name string, e *entry) (string, bool, error) {
	out, err := vm.Run(e.program, p.scope(name))
	if err != nil {
		return "", false, pkg.ErrExprEvaluate.Wrapf("%s: %s: %w", p.name, name, err)
	}

	if out == nil {
		return "", false, nil
	}

	text, err := literalText(out, false)
	if err != nil {
		return "", false, pkg.ErrExprEvaluate.Wrapf("%s: %s: %w", p.name, name, err)
	}

	return text, true, nil
}

// Keys returns the names defined by the profile, sorted.
func (p *Profile) Keys() []string {
	return slices.Sorted(maps.Keys(p.entries))
}

// Err returns the evaluation failures of every expression looked up so far,
// ordered by name.
func (p *Profile) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := slices.Sorted(maps.Keys(p.failed))

	errs := make([]error, len(keys))
	for i, k := range keys {
		errs[i] = p.failed[k]
	}

	return errors.Join(errs...)
}

// literalText formats an expression result as replacement text. Inside a
// list, strings are quoted as Go string literals.
func literalText(v any, element bool) (string, error) {
	switch v := v.(type) {
	case string:
		if element {
			return strconv.Quote(v), nil
		}

		return v, nil

	case bool:
		return strconv.FormatBool(v), nil

	case int:
		return strconv.Itoa(v), nil

	case int64:
		return strconv.FormatInt(v, 10), nil

	case uint64:
		return strconv.FormatUint(v, 10), nil

	case float64:
		return floatText(v)

	case []any:
		elts := make([]string, len(v))

		for i, x := range v {
			s, err := literalText(x, true)
			if err != nil {
				return "", err
			}

			elts[i] = s
		}

		return "{" + strings.Join(elts, ", ") + "}", nil

	default:
		return "", fmt.Errorf("result of type %T has no literal form", v)
	}
}

// floatText formats f so that it always reads back as a floating-point
// literal.
func floatText(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("result %v has no literal form", f)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s, nil
}

func environMap(environ []string) map[string]any {
	env := make(map[string]any, len(environ))

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}

	return env
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(subject string, predicate func(string) bool, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
