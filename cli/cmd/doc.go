// Package cmd implements the envlit subcommands.
//
//   - [Gen] rewrites Go files, replacing every materialization site whose
//     key is present with a literal built from its value.
//   - [Check] reports every site without writing anything.
//   - [Lit] materializes a single literal given on the command line.
//   - [Init] writes the current flag values to the configuration file.
//
// Commands receive the [context.Context] built by the cli package, which
// carries the parsed [kong.Context] ([WithContext]) and the lookup source
// ([WithSource]).
package cmd

// ConfigIdentifier is the kong variable identifier holding the path of the
// configuration file.
var ConfigIdentifier = "config"
