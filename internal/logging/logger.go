// Package logging provides structured logging for fmea.
//
// Get a named logger per component and log with printf-style arguments or
// structured fields:
//
//	logger := logging.GetLogger("worksheet")
//	logger.Info("loaded %d links", n)
//	logger.WarnWithFields("unresolved references",
//	    logging.Field("count", unresolved),
//	    logging.Field("file", path),
//	)
//
// Loggers are immutable; WithField, WithFields and WithContext return new
// loggers. A logger created WithContext adds trace_id and span_id from the
// active OpenTelemetry span, or from values stored under TraceIDKey and
// SpanIDKey.
//
// Levels can be overridden per component, with "pkg.*" wildcards:
//
//	logging.Initialize("info", map[string]string{"linkage": "debug", "config.*": "warn"})
//
// Output goes to stderr by default because the CLI writes documents to
// stdout. Fields are printed in key order. Set LOG_TIMESTAMP to pin the
// timestamp in tests.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	globalMu    sync.RWMutex
	globalLevel = INFO
	output      io.Writer = os.Stderr
)

// Initialize sets the default level and optional per-package overrides.
// Unknown default levels fall back to INFO.
func Initialize(levelStr string, packageLevels ...map[string]string) error {
	level, err := parseLevel(levelStr)
	if err != nil {
		level = INFO
	}

	globalMu.Lock()
	globalLevel = level
	globalMu.Unlock()

	if len(packageLevels) > 0 && packageLevels[0] != nil {
		return SetPackageLogLevels(packageLevels[0])
	}
	return SetPackageLogLevels(map[string]string{})
}

// SetOutput redirects all loggers. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	globalMu.Lock()
	defer globalMu.Unlock()
	prev := output
	output = w
	return prev
}

// GetLogger returns a logger with the specified name
func GetLogger(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) shouldLog(level LogLevel) bool {
	if pkgLevel := GetPackageLogLevel(l.name); pkgLevel >= 0 {
		return level >= pkgLevel
	}
	globalMu.RLock()
	defer globalMu.RUnlock()
	return level >= globalLevel
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.shouldLog(level)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(DEBUG) {
		l.logf(DEBUG, msg, args...)
	}
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(INFO) {
		l.logf(INFO, msg, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(WARN) {
		l.logf(WARN, msg, args...)
	}
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(ERROR) {
		l.logf(ERROR, msg, args...)
	}
}

// ErrorWithErr logs an error message with an error object
func (l *Logger) ErrorWithErr(msg string, err error) {
	if l.shouldLog(ERROR) {
		l.logWithFields(ERROR, msg, Field("error", err))
	}
}

// WithName returns a new logger with a custom name
func (l *Logger) WithName(name string) *Logger {
	return &Logger{name: name, fields: l.fields, ctx: l.ctx}
}

// WithField adds a structured field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Field(key, value))
}

// WithFields adds multiple structured fields to the logger
func (l *Logger) WithFields(fields ...LogField) *Logger {
	merged := make([]LogField, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{name: l.name, fields: merged, ctx: l.ctx}
}

// WithContext returns a logger that adds trace and span ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{name: l.name, fields: l.fields, ctx: ctx}
}

// DebugWithFields logs a debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields ...LogField) {
	if l.shouldLog(DEBUG) {
		l.logWithFields(DEBUG, msg, fields...)
	}
}

// InfoWithFields logs an info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields ...LogField) {
	if l.shouldLog(INFO) {
		l.logWithFields(INFO, msg, fields...)
	}
}

// WarnWithFields logs a warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields ...LogField) {
	if l.shouldLog(WARN) {
		l.logWithFields(WARN, msg, fields...)
	}
}

// ErrorWithFields logs an error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) {
	if l.shouldLog(ERROR) {
		l.logWithFields(ERROR, msg, fields...)
	}
}

// logWithFields merges context fields, logger fields and call fields; later
// sources win on key collisions.
func (l *Logger) logWithFields(level LogLevel, msg string, fields ...LogField) {
	merged := extractContextFields(l.ctx)
	if len(l.fields) > 0 || len(fields) > 0 {
		if merged == nil {
			merged = make(map[string]interface{}, len(l.fields)+len(fields))
		}
		for _, f := range l.fields {
			merged[f.Key] = f.Value
		}
		for _, f := range fields {
			merged[f.Key] = f.Value
		}
	}
	l.writeLog(level, msg, merged)
}

func levelName(level LogLevel) string {
	return strings.ToUpper(level.String())
}
