// Package logging builds the application logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where log lines go
type Options struct {
	Level zerolog.Level
	// File, when set, receives JSON lines rotated by size
	File string
}

// New returns a console logger writing to console, teeing into a rotated
// file when opts.File is set. The returned closer releases the file.
func New(opts Options, console io.Writer) (zerolog.Logger, io.Closer) {
	var w io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = zerolog.MultiLevelWriter(w, file)
		closer = file
	}

	logger := zerolog.New(w).Level(opts.Level).With().Timestamp().Logger()
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
