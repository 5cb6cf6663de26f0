// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"

	"enercast/internal/common/fsutil"
)

// Options select the sink and verbosity of the process logger.
type Options struct {
	Level  string // trace, debug, info, warn, error; empty or unknown means info
	Format string // "console" for human-readable stderr output, anything else is JSON
	File   string // when set, write JSON lines to a daily-rotated file instead of stderr
}

// New builds a zerolog logger per the options. The file sink wins over the
// console format and rotates daily under the name pattern <file>_YYYYMMDD.
func New(opts Options) (zerolog.Logger, error) {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		if err := fsutil.EnsureDir(opts.File); err != nil {
			return zerolog.Nop(), err
		}
		rl, err := rotatelogs.New(opts.File + "_%Y%m%d")
		if err != nil {
			return zerolog.Nop(), err
		}
		w = rl
	} else if strings.EqualFold(opts.Format, "console") {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(w).Level(parseLevel(opts.Level)).With().Timestamp().Logger(), nil
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
