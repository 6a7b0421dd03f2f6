package logger

import (
	"log/slog"
)

// CustomLogger is what every package keeps in its package level log var
type CustomLogger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)

	GetLevel() slog.Level
	SetLevel(level slog.Leveler)
	SetLevelString(level string) error
	SetReportCaller(reportCaller bool)
}
