package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
)

// exit is swapped out in tests so Fatal can be observed.
var (
	osExit = os.Exit
	exit   = osExit
)

var levelColors = map[Level]string{
	WarnLevel:  ColorYellow,
	ErrorLevel: ColorRed,
	FatalLevel: ColorBold + ColorRed,
}

// DefaultLogger prints one line per event through the standard log
// package. Debug and info lines go to the out writer, warnings and worse
// to errOut. Fields are printed as key=value in key order.
type DefaultLogger struct {
	out       *log.Logger
	errOut    *log.Logger
	level     Level
	fields    Fields
	useColors bool
}

// NewDefaultLogger logs to stdout and stderr, colored when stdout is a
// terminal.
func NewDefaultLogger() *DefaultLogger {
	l := NewWriterLogger(os.Stdout, os.Stderr)
	l.useColors = isTerminal()
	return l
}

// NewWriterLogger builds an uncolored logger over arbitrary writers.
func NewWriterLogger(out, errOut io.Writer) *DefaultLogger {
	return &DefaultLogger{
		out:    log.New(out, "", log.LstdFlags),
		errOut: log.New(errOut, "", log.LstdFlags),
		level:  InfoLevel,
	}
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func (d *DefaultLogger) sink(level Level) *log.Logger {
	if level >= WarnLevel {
		return d.errOut
	}
	return d.out
}

func (d *DefaultLogger) format(level Level, err error, msg string, extra []Fields) string {
	all := maps.Clone(d.fields)
	if all == nil {
		all = make(Fields)
	}
	for _, f := range extra {
		maps.Copy(all, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}
	for _, key := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(&b, " %s=%v", key, all[key])
	}

	if color, ok := levelColors[level]; ok && d.useColors {
		return color + b.String() + ColorReset
	}
	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields []Fields) {
	if level < d.level {
		return
	}
	d.sink(level).Println(d.format(level, err, msg, fields))
	if level == FatalLevel {
		exit(1)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) { d.log(DebugLevel, nil, msg, fields) }
func (d *DefaultLogger) Info(msg string, fields ...Fields)  { d.log(InfoLevel, nil, msg, fields) }
func (d *DefaultLogger) Warn(msg string, fields ...Fields)  { d.log(WarnLevel, nil, msg, fields) }

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields)
}

// Fatal logs and exits the process with status 1.
func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.log(FatalLevel, err, msg, fields)
}

// WithFields returns a copy carrying the union of both field sets. The
// receiver is left untouched.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	child := *d
	child.fields = maps.Clone(d.fields)
	if child.fields == nil {
		child.fields = make(Fields, len(fields))
	}
	maps.Copy(child.fields, fields)
	return &child
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := fieldsFromContext(ctx); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(string, ...Fields)            {}
func (n *NoOpLogger) Info(string, ...Fields)             {}
func (n *NoOpLogger) Warn(string, ...Fields)             {}
func (n *NoOpLogger) Error(error, string, ...Fields)     {}
func (n *NoOpLogger) Fatal(error, string, ...Fields)     {}
func (n *NoOpLogger) WithFields(Fields) Logger           { return n }
func (n *NoOpLogger) WithContext(context.Context) Logger { return n }
func (n *NoOpLogger) SetLevel(Level)                     {}
