package logging

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger provides structured logging for request handling
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns a no-op
// logger if not found
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// stdLogger writes through the standard logger with sorted key=value
// metadata, for the server entrypoint.
type stdLogger struct {
	minLevel int
}

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// NewStdLogger creates a logger writing to the process log at the
// given minimum level (DEBUG, INFO, WARN, ERROR).
func NewStdLogger(minLevel string) Logger {
	rank, ok := levelRank[strings.ToUpper(minLevel)]
	if !ok {
		rank = levelRank["INFO"]
	}
	return &stdLogger{minLevel: rank}
}

func (l *stdLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	if rank < l.minLevel {
		return
	}

	if len(metadata) == 0 {
		log.Printf("[%s] %s", strings.ToUpper(level), message)
		return
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	log.Printf("[%s] %s%s", strings.ToUpper(level), message, b.String())
}
