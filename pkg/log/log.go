// Package log provides named, leveled loggers on top of the standard library
// logger.
//
// Every package obtains a logger once with ForService and keeps it in a
// package variable:
//
//	var l = log.ForService("render")
//
//	l.Warnf("block %s: %v", id, err)
//	l.Debugf("skipping run %d", i) // only printed when debug is enabled
//
// Lines are prefixed with the level and "[name>]". Debug output can be
// enabled for everything (SetGlobalDebug) or for selected services
// (EnableDebugFor). Tests redirect output with SetOutput.
//
// The package name collides with the standard library; alias one of them
// when both are needed.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// Logger is a named logger. Loggers are memoized per name and safe for
// concurrent use.
type Logger struct {
	name string
	std  *log.Logger
}

// writerHolder keeps the concrete type stored in the atomic.Value stable
// across SetOutput calls with different writer types.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug  atomic.Bool
	serviceDebug sync.Map // name -> *atomic.Bool
	loggers      sync.Map // name -> *Logger
	output       atomic.Value
)

func init() {
	output.Store(writerHolder{w: os.Stderr})
}

// ForService returns the logger for name, creating it on first use.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	w := output.Load().(writerHolder).w
	l := &Logger{name: name, std: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
	actual, _ := loggers.LoadOrStore(name, l)
	return actual.(*Logger)
}

// Name returns the service name the logger was created for.
func (l *Logger) Name() string { return l.name }

// SetGlobalDebug turns debug output on or off for every logger.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

func GlobalDebug() bool {
	return globalDebug.Load()
}

// EnableDebugFor turns debug output on for a single service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	v, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	v.(*atomic.Bool).Store(true)
}

func DisableDebugFor(name string) {
	if v, ok := serviceDebug.Load(name); ok {
		v.(*atomic.Bool).Store(false)
	}
}

// DebugEnabledFor reports whether debug output is on for name, either
// globally or for that service.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if v, ok := serviceDebug.Load(name); ok {
		return v.(*atomic.Bool).Load()
	}
	return false
}

// SetOutput redirects every logger, existing and future, to w.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	output.Store(writerHolder{w: w})
	loggers.Range(func(_, v any) bool {
		v.(*Logger).std.SetOutput(w)
		return true
	})
}

func (l *Logger) emit(level, format string, args ...any) {
	l.std.Println(level + " [" + l.name + ">] " + fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.emit(LevelInfo, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.emit(LevelWarn, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.emit(LevelError, format, args...)
}

// Debugf logs only when debug is enabled for this logger's service.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(LevelDebug, format, args...)
}
