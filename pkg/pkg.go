//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of envlit embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It is also the base name of the user
	// configuration and cache directories.
	Name = "envlit"
	// Description is the one-line summary shown in help output.
	Description = "Materialize typed Go literals from the environment"
)

// AuthorInfo is an author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
