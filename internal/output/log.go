// Package output provides terminal output utilities.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger *log.Logger

// stdout receives command results; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// logOut receives log lines and survives SetupLogging.
var logOut io.Writer = os.Stderr

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig controls logger construction.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and forces timestamps on.
	Verbose bool

	// Timestamps overrides timestamp display. Nil means the default (on).
	Timestamps *bool
}

func (c LogConfig) timestamps() bool {
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return true
}

// SetupLogging configures the logger based on verbosity and timestamp settings.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(logOut, log.Options{
		Level:           level,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// SetLogOutput redirects log output, keeping the current level and options.
func SetLogOutput(w io.Writer) {
	logOut = w
	logger.SetOutput(w)
}

// SetOutput redirects command output written by Print and Println.
// It returns a function restoring the previous writer.
func SetOutput(w io.Writer) func() {
	prev := stdout
	stdout = w
	return func() { stdout = prev }
}

// Writer returns the current command output writer.
func Writer() io.Writer {
	return stdout
}

// FileLogger returns a child logger whose lines are prefixed with a path.
func FileLogger(path string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("f:") + StyleNoun.Render(path))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	fmt.Fprint(stdout, msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	fmt.Fprintln(stdout, msg)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
