// Package logging builds the process logger from the log configuration.
package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
)

// Logger is the process logger and the files it writes to.
type Logger struct {
	*slog.Logger

	// Level can be raised or lowered at runtime.
	Level *slog.LevelVar

	file *os.File
}

// New returns a logger writing text records to w and, when cfg.File is set,
// JSON records to that file.
func New(w io.Writer, cfg config.LogConfig) (*Logger, error) {
	level := new(slog.LevelVar)
	if cfg.Level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.New("M123").Wrap(err)
		}
		level.Set(l)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Newf(errors.CategoryConfig, "open log file %s", cfg.File).Wrap(err)
		}
		file = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		Level:  level,
		file:   file,
	}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
