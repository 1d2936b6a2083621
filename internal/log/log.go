// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small leveled-logging facade in the style of
// github.com/saferwall/pe/log (a Kratos-derived logger interface the
// teacher's Options.Logger references). That package's own source is
// not present in the examples pack, so this is authored in-repo rather
// than imported, per SPEC_FULL.md §10.2.
package log

import (
	"fmt"
	"os"
	"sync"
)

// Level is a log severity, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal structured-logging contract the library's
// components accept. Log takes a level plus alternating key/value
// pairs, matching the teacher's convention.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes to an *os.File, one line per call, with no
// dependencies beyond the standard library.
type stdLogger struct {
	mu  sync.Mutex
	out *os.File
}

// NewStdLogger returns a Logger that writes formatted lines to w.
func NewStdLogger(w *os.File) Logger {
	return &stdLogger{out: w}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] ", level)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			fmt.Fprintf(l.out, "%v=%v ", keyvals[i], keyvals[i+1])
		} else {
			fmt.Fprintf(l.out, "%v ", keyvals[i])
		}
	}
	fmt.Fprintln(l.out)
	return nil
}

// nopLogger discards everything; the default when no Logger is configured.
type nopLogger struct{}

func (nopLogger) Log(Level, ...interface{}) error { return nil }

// NewNopLogger returns a Logger that discards all output.
func NewNopLogger() Logger { return nopLogger{} }

// filterLogger wraps a Logger and drops records below a minimum level.
type filterLogger struct {
	next  Logger
	level Level
}

// NewFilter wraps next so that only records at or above level pass
// through.
func NewFilter(next Logger, level Level) Logger {
	return &filterLogger{next: next, level: level}
}

func (f *filterLogger) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper adds convenience methods (Debugf/Infof/Warnf/Errorf) over a
// bare Logger, mirroring the teacher's log.Helper usage at call sites.
type Helper struct {
	logger Logger
}

func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, "msg", fmt.Sprintf(format, args...))
}
