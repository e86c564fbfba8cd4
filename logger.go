package dotswarm

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while an engine runs on another goroutine.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func newNopLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// SetLogger configures the logger used by dotswarm and its sub-packages.
// By default nothing is logged. Pass nil to restore silence.
//
// Levels used:
//   - Debug: catalog construction, transition start/settle, per-frame stats in debug mode
//   - Warn: degenerate catalogs
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *log.Logger {
	return loggerPtr.Load()
}
