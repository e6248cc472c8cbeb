// Package logging builds the application's zap logger. Output always goes to
// a rotated file: the terminal belongs to the UI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options describes the log file and level.
type Options struct {
	Level      string // "debug", "info", "warn", "error"
	File       string // empty means DefaultPath()
	MaxSizeMB  int
	MaxBackups int
}

// Logger bundles the zap logger with its level and file writer.
type Logger struct {
	*zap.Logger
	level  zap.AtomicLevel
	closer io.Closer
	path   string
}

// DefaultPath returns $XDG_STATE_HOME/xiamiu/xiamiu.log, creating the directory.
func DefaultPath() (string, error) {
	path, err := xdg.StateFile("xiamiu/xiamiu.log")
	if err != nil {
		return "", fmt.Errorf("get log path: %w", err)
	}
	return path, nil
}

// New opens the log file and returns a JSON logger writing to it.
func New(opts Options) (*Logger, error) {
	path := opts.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   false,
	}

	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), level)

	return &Logger{
		Logger: zap.New(core, zap.AddCaller()),
		level:  level,
		closer: lj,
		path:   path,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// SetLevel changes the level at runtime (e.g. --verbose).
func (l *Logger) SetLevel(level string) {
	l.level.SetLevel(ParseLevel(level))
}

// Close flushes buffered entries and closes the file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel converts a level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
