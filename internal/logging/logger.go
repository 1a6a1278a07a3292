package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes diagnostic output to stderr. Debug lines are suppressed
// unless debug mode is enabled, so normal command output stays clean.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
}

// New creates a logger writing to the given writer. A nil writer
// defaults to stderr.
func New(out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out}
}

// SetDebug toggles debug output.
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

// Debugf logs a formatted line when debug mode is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[debug] "+format+"\n", args...)
}

// Errorf logs a formatted error line unconditionally.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[error] "+format+"\n", args...)
}
