package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// BasicLogger writes one "[LEVEL] msg key=value" line per entry.
type BasicLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	fields []Field
}

var _ Logger = (*BasicLogger)(nil)

// New returns a basic logger writing to out, or stdout when out is nil.
func New(out io.Writer) *BasicLogger {
	if out == nil {
		out = os.Stdout
	}
	return &BasicLogger{
		mu:  &sync.Mutex{},
		out: out,
	}
}

// Default returns a basic logger writing to stdout.
func Default() Logger {
	return New(nil)
}

// With returns a logger that includes fields on each log line.
func (l *BasicLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	next := &BasicLogger{
		mu:     l.mu,
		out:    l.out,
		fields: make([]Field, 0, len(l.fields)+len(fields)),
	}
	next.fields = append(next.fields, l.fields...)
	next.fields = append(next.fields, fields...)
	return next
}

func (l *BasicLogger) Debug(msg string, fields ...Field) { l.log("DEBUG", msg, fields) }
func (l *BasicLogger) Info(msg string, fields ...Field)  { l.log("INFO", msg, fields) }
func (l *BasicLogger) Warn(msg string, fields ...Field)  { l.log("WARN", msg, fields) }
func (l *BasicLogger) Error(msg string, fields ...Field) { l.log("ERROR", msg, fields) }

func (l *BasicLogger) log(level, msg string, fields []Field) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	if rendered := formatFields(append(append([]Field(nil), l.fields...), fields...)); rendered != "" {
		line += " " + rendered
	}
	l.mu.Lock()
	fmt.Fprintln(l.out, line)
	l.mu.Unlock()
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}
