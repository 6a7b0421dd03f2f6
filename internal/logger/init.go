package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

var logger *Logger

type NewLoggerFunc func(w io.Writer, addSource bool, level slog.Leveler, color bool) (slog.Handler, *slog.LevelVar)

var LoggerFormats = map[string]NewLoggerFunc{
	"console": NewConsole,
	"json":    NewJSON,
}

// the process wide logger writes to stderr at the info level
func init() {
	w := os.Stderr
	color := isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())

	logger = NewLogger(NewConsole, w, false, slog.LevelInfo, color)
	slog.SetDefault(logger.Slog())
}

// GetLogger returns the process wide logger.  Packages keep the returned
// pointer, so reconfigure it in place rather than replacing it.
func GetLogger() *Logger {
	return logger
}

// SwitchLogger changes the format of the process wide logger
func SwitchLogger(format string) error {
	f, ok := LoggerFormats[format]
	if !ok {
		return fmt.Errorf("invalid logger format: %s", format)
	}

	logger.SetFormat(f)
	slog.SetDefault(logger.Slog())
	return nil
}
