package testsupport

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-site/pkg/interfaces"
)

// LogEntry is one call captured by a LogRecorder.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// LogRecorder is an interfaces.LoggerProvider that keeps every entry in
// memory. Loggers it hands out carry a "logger" field with the requested
// name and are safe to use from several goroutines.
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ interfaces.LoggerProvider = (*LogRecorder)(nil)

func (r *LogRecorder) GetLogger(name string) interfaces.Logger {
	return &recordedLogger{rec: r, fields: map[string]any{"logger": name}}
}

// Entries returns a copy of everything recorded so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), r.entries...)
}

// Find returns the first entry logged with message.
func (r *LogRecorder) Find(message string) (LogEntry, bool) {
	for _, entry := range r.Entries() {
		if entry.Message == message {
			return entry, true
		}
	}
	return LogEntry{}, false
}

func (r *LogRecorder) add(entry LogEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

type recordedLogger struct {
	rec    *LogRecorder
	fields map[string]any
}

func (l *recordedLogger) Trace(msg string, args ...any) { l.log("trace", msg, args) }
func (l *recordedLogger) Debug(msg string, args ...any) { l.log("debug", msg, args) }
func (l *recordedLogger) Info(msg string, args ...any)  { l.log("info", msg, args) }
func (l *recordedLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args) }
func (l *recordedLogger) Error(msg string, args ...any) { l.log("error", msg, args) }
func (l *recordedLogger) Fatal(msg string, args ...any) { l.log("fatal", msg, args) }

func (l *recordedLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &recordedLogger{rec: l.rec, fields: merged}
}

func (l *recordedLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

// log flattens key/value pairs onto the logger fields; a dangling key or a
// non-string key is dropped.
func (l *recordedLogger) log(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok && key != "" {
			fields[key] = args[i+1]
		}
	}
	l.rec.add(LogEntry{Level: level, Message: msg, Fields: fields})
}
