package logging

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// writeLog renders one line: "[ts] [LEVEL] name: msg | k=v k=v".
func (l *Logger) writeLog(level LogLevel, msg string, fields map[string]interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] %s: %s", GetTimestamp(), levelName(level), l.name, msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, fields[k])
		}
	}
	sb.WriteByte('\n')

	globalMu.RLock()
	w := output
	globalMu.RUnlock()
	_, _ = w.Write([]byte(sb.String()))
}

// logf is the internal logging function for formatted messages
func (l *Logger) logf(level LogLevel, msg string, args ...interface{}) {
	l.logWithFields(level, fmt.Sprintf(msg, args...))
}

// GetTimestamp returns an RFC3339 timestamp, or LOG_TIMESTAMP if set.
func GetTimestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
