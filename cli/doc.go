// Package cli contains the command line interface for envlit.
//
// # Usage
//
//	envlit [flags] [gen] [-w] [--deps FILE] [FILE ...]
//	envlit [flags] check [--deps FILE] [FILE ...]
//	envlit [flags] lit KEY DEFAULT
//	envlit [flags] init [--force]
//
// gen is the default command. FILE may name a Go file, a directory, a
// directory/... pattern, or "-" for standard input; the default is the
// current directory.
//
// # Sources
//
// Values are looked up, in order, in the --set assignments, the expression
// profile given with --profile, and the process environment.
//
// # Configuration
//
// Flags may also be set in $XDG_CONFIG_HOME/envlit/config.yaml, a flat YAML
// mapping of flag names to values written by the init command. Command-line
// flags override it.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof ./cmd/envlit
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/envlit/pprof)
package cli
