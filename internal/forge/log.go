package forge

import (
	"io"
	"log"
	"os"
)

// Logger appends timestamped entries to the run's process.log and echoes
// them to stderr. Info entries are echoed only in verbose mode; warnings
// and errors are always echoed.
type Logger struct {
	file    *log.Logger
	console *log.Logger
	verbose bool
	closer  io.Closer
}

// NewLogger opens (or creates) the log file at logPath for appending.
func NewLogger(logPath string, verbose bool) (*Logger, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	l := newLogger(f, verbose)
	l.closer = f

	return l, nil
}

// newLogger builds a Logger around an arbitrary writer. for testing.
func newLogger(w io.Writer, verbose bool) *Logger {
	return &Logger{
		file:    log.New(w, "", log.LstdFlags),
		console: log.New(os.Stderr, "", log.LstdFlags),
		verbose: verbose,
	}
}

// Logf records an informational entry.
func (l *Logger) Logf(format string, args ...interface{}) {
	l.file.Printf(format, args...)
	if l.verbose {
		l.console.Printf(format, args...)
	}
}

// Warnf records a recovered condition: a dropped record, a skipped row.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.file.Printf("WARNING: "+format, args...)
	l.console.Printf("WARNING: "+format, args...)
}

// Errorf records a condition that failed or degraded a collection.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.file.Printf("ERROR: "+format, args...)
	l.console.Printf("ERROR: "+format, args...)
}

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
