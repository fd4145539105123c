package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/envlit/pkg"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The file is a flat mapping from flag names to values. Hyphens in flag
// names may be written as underscores, and list values feed repeatable
// flags:
//
//	log-level: debug
//	log_pretty: false
//	profile: ~/.config/envlit/profile.yaml
//	set:
//	  - REGION=us-east-1
//
// Command-line flags override values from the file. An empty file
// resolves nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, pkg.ErrYAMLUnmarshal.Wrap(err)
	}

	c := make(config, len(m))

	for k, v := range m {
		c[strings.ReplaceAll(k, "_", "-")] = flagValue(v)
	}

	return c, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
// Keys are normalized to hyphenated flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return v, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value to a form kong can parse.
// Scalars other than strings and booleans are passed as their text, since
// kong's numeric mappers expect strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil, string, bool:
		return v

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out

	default:
		return fmt.Sprint(v)
	}
}
