package cli

import (
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger. Unknown level strings fall back to the
// default info level.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
