// Package logging builds the process logger: a zap logger that writes to
// stdout and to a monthly log file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/mdserve/internal/util"
)

// Levels lists the accepted --log-level values.
var Levels = []string{"DEBUG", "CRITICAL", "FATAL", "ERROR", "WARNING", "WARN", "INFO", "NOTSET"}

// Options configures New.
type Options struct {
	// Level is one of Levels, case-insensitive. Empty means INFO.
	Level string
	// Dir receives the log file. Empty disables file output.
	Dir string
	// Console receives console output. Nil means os.Stdout.
	Console zapcore.WriteSyncer
	// Now is used for the file name; nil means time.Now.
	Now func() time.Time
}

// Logger owns the zap logger and the file behind it. Close must be called
// before exit so buffered entries reach the file.
type Logger struct {
	*zap.Logger
	level zapcore.Level
	file  *os.File
	path  string
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return zapcore.InfoLevel, nil
	case "DEBUG", "NOTSET":
		return zapcore.DebugLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		// zap's Fatal level exits the process; the threshold stops at DPanic,
		// which only panics in development mode.
		return zapcore.DPanicLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (choose from %s)%s",
		s, strings.Join(Levels, ", "), util.DidYouMean(s, Levels))
}

// FileName returns the monthly log file name for t, e.g. 2026-10-server.log.
func FileName(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-server.log", t.Year(), int(t.Month()))
}

// New builds a Logger. The log directory is created if missing.
func New(opts Options) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stdout)
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, console, lvl)}

	l := &Logger{level: lvl}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		l.path = filepath.Join(opts.Dir, FileName(now()))
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), lvl))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...)).With(zap.Int("pid", os.Getpid()))
	return l, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zapcore.InfoLevel}
}

// Level reports the configured threshold.
func (l *Logger) Level() zapcore.Level { return l.level }

// Path is the log file path, or "" when file output is disabled.
func (l *Logger) Path() string { return l.path }

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.Logger == nil {
		return nil
	}
	// Sync on a terminal stdout reports EINVAL/ENOTTY; only the file matters.
	_ = l.Logger.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05,000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " - "
	cfg.CallerKey = zapcore.OmitKey
	return cfg
}
