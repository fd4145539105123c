// Package log wraps [log/slog] with the levels, formats, and terminal styling
// used by envlit.
//
// A [Logger] is an immutable value. Configuration is fixed when the logger is
// made with [Make] and derived loggers are produced with [Logger.Wrap] and
// [Logger.With]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//
//	logger.Debug("materialize", slog.String("key", "PORT"))
//
// Besides the slog levels, the package defines [LevelTrace] for per-lookup
// output that is too verbose for [LevelDebug].
//
// # Default logger
//
// The package-level functions ([Trace], [Debug], [Info], [Warn], [Error])
// write through the default logger. Commands adjust it with [Configure] before
// doing any work, and libraries capture it with [Default].
//
// # Pretty output
//
// With [WithPretty] enabled, text output is styled with lipgloss. Styling is
// chosen from the color profile of the output writer, so output redirected
// to a file or buffer is plain text.
package log
