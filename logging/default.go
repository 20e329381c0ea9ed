package logging

import (
	"fmt"
	"log"
	"maps"
	"os"
	"sort"
	"strings"
)

// DefaultLogger is a leveled logger built on Go's standard log package.
// Debug/Info go to stdout, Warn/Error to stderr.
type DefaultLogger struct {
	stdoutLogger *log.Logger
	stderrLogger *log.Logger
	level        Level
	fields       Fields
}

// NewDefaultLogger creates a new default logger at InfoLevel
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		stdoutLogger: log.New(os.Stdout, "", log.LstdFlags),
		stderrLogger: log.New(os.Stderr, "", log.LstdFlags),
		level:        InfoLevel,
		fields:       make(Fields),
	}
}

func (d *DefaultLogger) formatMessage(level Level, err error, msg string, fields ...Fields) string {
	allFields := make(Fields)
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}
	if err != nil {
		allFields["error"] = err.Error()
	}

	var sb strings.Builder
	sb.WriteString("[" + level.String() + "] " + msg)

	if len(allFields) > 0 {
		keys := make([]string, 0, len(allFields))
		for k := range allFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, allFields[k])
		}
	}

	return sb.String()
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	if d.level <= DebugLevel {
		d.stdoutLogger.Println(d.formatMessage(DebugLevel, nil, msg, fields...))
	}
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	if d.level <= InfoLevel {
		d.stdoutLogger.Println(d.formatMessage(InfoLevel, nil, msg, fields...))
	}
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	if d.level <= WarnLevel {
		d.stderrLogger.Println(d.formatMessage(WarnLevel, nil, msg, fields...))
	}
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	if d.level <= ErrorLevel {
		d.stderrLogger.Println(d.formatMessage(ErrorLevel, err, msg, fields...))
	}
}

// WithFields returns a logger that includes the given fields on every message
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields)
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		stdoutLogger: d.stdoutLogger,
		stderrLogger: d.stderrLogger,
		level:        d.level,
		fields:       merged,
	}
}

// SetLevel sets the minimum log level
func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}
