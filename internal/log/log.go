// Package log provides category-tagged structured logging for kiln-release.
//
// Call sites pass a Category, a message and alternating key/value pairs:
//
//	log.Info(log.CatGit, "Created release branch", "branch", name, "head", head)
//	log.ErrorErr(log.CatBuild, "Image build failed", err, "image", ref)
//
// Until Init is called every call is discarded, which keeps package tests quiet.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Category groups log lines by pipeline area.
type Category string

const (
	CatConfig   Category = "config"
	CatGit      Category = "git"
	CatManifest Category = "manifest"
	CatBuild    Category = "build"
	CatSign     Category = "sign"
	CatPublish  Category = "publish"
	CatPipeline Category = "pipeline"
	CatDB       Category = "db"
)

// Options configures the process-wide logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives JSON lines in addition to the console output.
	File string
	// Console is the human-readable sink. Nil means stderr.
	Console io.Writer
	// NoColor disables ANSI colors in the console sink.
	NoColor bool
}

var (
	mu      sync.RWMutex
	logger  = zerolog.Nop()
	logFile *os.File
)

// Init installs the process-wide logger. It is safe to call more than once;
// a previously opened log file is closed.
func Init(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
		level = lvl
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		NoColor:    opts.NoColor,
		TimeFormat: time.Kitchen,
	}}

	var f *os.File
	if opts.File != "" {
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // operator supplied path
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logger = l
	logFile = f
	return nil
}

// SetLogger replaces the logger directly. Tests use it to capture output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Close flushes and closes the log file, if any, and resets to the no-op logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.Nop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Debug logs at debug level.
func Debug(cat Category, msg string, kv ...any) {
	emit(current().Debug(), cat, msg, kv)
}

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) {
	emit(current().Info(), cat, msg, kv)
}

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) {
	emit(current().Warn(), cat, msg, kv)
}

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) {
	emit(current().Error(), cat, msg, kv)
}

// ErrorErr logs at error level with err attached under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	emit(current().Error().Err(err), cat, msg, kv)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func emit(ev *zerolog.Event, cat Category, msg string, kv []any) {
	if ev == nil {
		return
	}
	ev = ev.Str("cat", string(cat))
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			ev = ev.Str(key, "(MISSING)")
			break
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
