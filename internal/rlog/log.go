// Package rlog is the reactor's logging package: a thin, colorized
// wrapper over the standard library logger with namespace-scoped
// debug filtering. The pool (whose workers share its logger) and the
// server each own one of these, prefixed with their own name.
package rlog

import (
	"io"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	stdlog "log"

	"github.com/gookit/color"
)

// Global configuration, as package-level knobs.
var (
	DEBUG  bool      = false
	Output io.Writer = os.Stderr
	Flags  int       = stdlog.LstdFlags
)

// Log is a named logger with severity-colored output and an optional
// namespace filter for Debug messages, controlled by the DEBUG
// environment variable (supports a "*" glob, e.g. "reactor.pool.*").
type Log struct {
	*stdlog.Logger

	prefix    atomic.Pointer[string]
	namespace *regexp.Regexp
}

// New creates a logger scoped to the given component name.
func New(name string) *Log {
	l := &Log{Logger: stdlog.New(Output, "", Flags)}
	l.SetPrefix(name)

	if debug := os.Getenv("DEBUG"); debug != "" {
		pattern := "^" + strings.ReplaceAll(regexp.QuoteMeta(strings.TrimSpace(debug)), `\*`, `.*`) + "$"
		l.namespace = regexp.MustCompile(pattern)
	}

	return l
}

// SetPrefix sets the logger's component name.
func (l *Log) SetPrefix(prefix string) {
	l.prefix.Store(&prefix)
	l.Logger.SetPrefix(prefix + " ")
}

// Prefix returns the logger's component name.
func (l *Log) Prefix() string {
	if v := l.prefix.Load(); v != nil {
		return *v
	}
	return ""
}

func (l *Log) matchesNamespace() bool {
	if l.namespace == nil {
		return true
	}
	return l.namespace.MatchString(l.Prefix())
}

// Debug logs a debug-colored message, but only when DEBUG is set and
// (if a namespace filter is active) this logger's prefix matches it.
func (l *Log) Debug(format string, args ...any) {
	if DEBUG && l.matchesNamespace() {
		l.Logger.Println(color.Debug.Sprintf(format, args...))
	}
}

// Info logs an info-colored message.
func (l *Log) Info(format string, args ...any) {
	l.Logger.Println(color.Info.Sprintf(format, args...))
}

// Warning logs a warning-colored message.
func (l *Log) Warning(format string, args ...any) {
	l.Logger.Println(color.Warn.Sprintf(format, args...))
}

// Error logs an error-colored message.
func (l *Log) Error(format string, args ...any) {
	l.Logger.Println(color.Danger.Sprintf(format, args...))
}
