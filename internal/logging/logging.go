package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is a deliberately small, framework-agnostic logging interface.
// Keep implementations behind it so any logger can be swapped in.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Level gates output; messages below the minimum level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// StderrLogger is a tiny structured logger that prints JSON lines to stderr,
// keeping stdout free for the program's own output.
type StderrLogger struct {
	component string
	minLevel  Level
	out       io.Writer
	mu        *sync.Mutex
	persist   []Field
}

// NewStderrLogger creates a StderrLogger. component is optional and will be
// carried onto children created via With().
func NewStderrLogger(component string, minLevel Level) *StderrLogger {
	return &StderrLogger{
		component: component,
		minLevel:  minLevel,
		out:       os.Stderr,
		mu:        &sync.Mutex{},
	}
}

// SetOutput redirects log output, mainly for tests.
func (s *StderrLogger) SetOutput(w io.Writer) {
	s.out = w
}

func (s *StderrLogger) log(level Level, msg string, fields ...Field) {
	if level < s.minLevel {
		return
	}

	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any)
	for _, f := range s.persist {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     level.String(),
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback simple formatting if JSON marshal fails
		s.mu.Lock()
		fmt.Fprintf(s.out, "%s %s %v\n", level, msg, m)
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	fmt.Fprintln(s.out, string(enc))
	s.mu.Unlock()
}

func (s *StderrLogger) Debug(msg string, fields ...Field) {
	s.log(LevelDebug, msg, fields...)
}

func (s *StderrLogger) Info(msg string, fields ...Field) {
	s.log(LevelInfo, msg, fields...)
}

func (s *StderrLogger) Warn(msg string, fields ...Field) {
	s.log(LevelWarn, msg, fields...)
}

func (s *StderrLogger) Error(msg string, fields ...Field) {
	s.log(LevelError, msg, fields...)
}

func (s *StderrLogger) With(fields ...Field) Logger {
	child := &StderrLogger{
		component: s.component,
		minLevel:  s.minLevel,
		out:       s.out,
		mu:        s.mu,
	}
	child.persist = append(append([]Field{}, s.persist...), fields...)
	// A component field overrides the component name
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
			}
		}
	}
	return child
}
