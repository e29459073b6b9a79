package projinit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes operator-visible output to the interactive console and to an
// append-only log file inside the workspace. It is created exactly once,
// immediately after the workspace exists (the log path is
// workspace-relative), and lives for the rest of the process.
//
// The log file accumulates across runs and is never truncated. Deleting it
// loses history, not state.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
}

// NewLogger opens (or creates) the append-only log file and returns a logger
// writing to both sinks.
func NewLogger(console io.Writer, logPath string) (*Logger, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{console: console, file: f}, nil
}

// Timestamp writes one line with a "[YYYY-MM-DD HH:MM:SS]" prefix to both
// sinks.
func (l *Logger) Timestamp(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf(format, args...))
	l.write(line)
}

// Printf writes plain output to both sinks without altering the console
// formatting the rest of the system emits.
func (l *Logger) Printf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

// Mode writes the run-mode marker near the top of this run's log segment so
// one file's history distinguishes fresh segments from resumed ones.
func (l *Logger) Mode(resume bool) {
	mode := "FRESH"
	if resume {
		mode = "RESUME"
	}
	l.Timestamp("Mode: %s", mode)
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.file.Name()
}

// Close closes the log file. The console sink is untouched.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *Logger) write(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console != nil {
		io.WriteString(l.console, s)
	}
	if l.file != nil {
		io.WriteString(l.file, s)
	}
}
