package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

const (
	LevelTrace  = slog.Level(-8)
	LevelFatal  = slog.Level(12)
	StackFrames = 5 // frames between fixupSource and the caller of Logger
)

var LevelStrings = map[string]slog.Level{
	"TRACE": LevelTrace,
	"FATAL": LevelFatal,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
	"DEBUG": slog.LevelDebug,
}

// LevelColor is the padded name and color of a level on the console
type LevelColor struct {
	Name  string
	Color color.Attribute
}

// String returns the padded level name, colorized if requested
func (lc LevelColor) String(useColor bool) string {
	if !useColor {
		return lc.Name
	}
	c := color.New(lc.Color)
	c.EnableColor()
	return c.Sprint(lc.Name)
}

var LevelColorsMap map[slog.Level]LevelColor = map[slog.Level]LevelColor{
	LevelTrace:      {Name: "TRACE", Color: color.FgGreen},
	LevelFatal:      {Name: "FATAL", Color: color.FgRed},
	slog.LevelInfo:  {Name: "INFO ", Color: color.FgBlue},
	slog.LevelWarn:  {Name: "WARN ", Color: color.FgYellow},
	slog.LevelError: {Name: "ERROR", Color: color.FgRed},
	slog.LevelDebug: {Name: "DEBUG", Color: color.FgMagenta},
}

// Trace logs a message below the debug level
func (l *Logger) Trace(msg string, args ...any) {
	l.LogWithSource(context.Background(), LevelTrace, StackFrames, msg, args...)
}

// Fatal logs a message and exits 1
func (l *Logger) Fatal(msg string, args ...any) {
	l.LogWithSource(context.Background(), LevelFatal, StackFrames, msg, args...)
	os.Exit(1)
}

// LogWithSource tags the record with the number of frames between the
// handler and our caller so that frameHandler can report the real caller.
func (l *Logger) LogWithSource(ctx context.Context, level slog.Level, frames int64, msg string, args ...any) {
	allArgs := make([]any, 0, len(args)+1)
	allArgs = append(allArgs, args...)
	if l.addSource {
		allArgs = append(allArgs, slog.Int64(FrameMarker, frames))
	}
	l.slog.Log(ctx, level, msg, allArgs...)
}
