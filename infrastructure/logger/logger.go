// Package logger provides per-subsystem leveled loggers, adapted from the
// teacher's logger+logs packages: a single rotating backend, one named
// logger per subsystem, level gated at the logger rather than the call
// site.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jrick/logrotate/rotator"
)

// Level is a logging severity, ordered least to most severe.
type Level uint32

// Severity levels, from least to most severe -- matches the btclog-style
// level set the teacher's subsystem loggers use.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelCritical:
		return "CRT"
	default:
		return "OFF"
	}
}

// Backend fans formatted log lines out to stdout and an optional rotator.
type Backend struct {
	mu      sync.Mutex
	writer  io.Writer
	rotator *rotator.Rotator
}

// NewBackend creates a Backend writing to stdout only; call InitRotator to
// additionally persist to a rotating log file.
func NewBackend() *Backend {
	return &Backend{writer: os.Stdout}
}

// InitRotator wires a rotating file writer alongside stdout, as the
// teacher's InitLogRotators does for btcdLog et al.
func (b *Backend) InitRotator(logFile string, maxRolls int) error {
	r, err := rotator.New(logFile, 10*1024, false, maxRolls)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.rotator = r
	b.mu.Unlock()
	return nil
}

func (b *Backend) write(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	io.WriteString(b.writer, line)
	if b.rotator != nil {
		b.rotator.Write([]byte(line))
	}
}

// Logger returns a named subsystem logger backed by this Backend, as the
// teacher's backendLog.Logger("CONS") pattern does.
func (b *Backend) Logger(subsystemTag string) *Logger {
	l := &Logger{backend: b, tag: subsystemTag}
	l.level.Store(uint32(LevelInfo))
	return l
}

// Logger is a single subsystem's leveled logger.
type Logger struct {
	backend *Backend
	tag     string
	level   atomic.Uint32
}

// SetLevel changes the minimum severity this logger emits.
func (l *Logger) SetLevel(level Level) { l.level.Store(uint32(level)) }

func (l *Logger) level_() Level { return Level(l.level.Load()) }

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.level_() {
		return
	}
	line := fmt.Sprintf("%s [%s] %s %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"), level, l.tag, fmt.Sprintf(format, args...))
	l.backend.write(line)
}

// Tracef logs at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) { l.logf(LevelTrace, format, args...) }

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(LevelInfo, format, args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Criticalf logs at critical level -- used at §7's "fatal store errors are
// logged and terminate the pipeline".
func (l *Logger) Criticalf(format string, args ...interface{}) { l.logf(LevelCritical, format, args...) }

var defaultBackend = NewBackend()

// BackendLog is the shared backend every subsystem logger is created from,
// mirroring the teacher's single package-level backendLog.
var BackendLog = defaultBackend
