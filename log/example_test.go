package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/envlit/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"))

	logger.Debug("materialize", slog.String("key", "PORT"), slog.String("literal", "8080"))
	logger.Trace("lookup", slog.String("key", "PORT"))

	// Output:
	// level=DEBUG msg=materialize key=PORT literal=8080
}
