// Package logging builds the console logger used by the CLI.
package logging

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger tagged with a fresh run id. Unknown levels
// fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	return zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// Logf adapts l to the printf-style hook the pipeline takes.
func Logf(l zerolog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		l.Info().Msg(fmt.Sprintf(format, args...))
	}
}
