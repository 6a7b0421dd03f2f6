package logger


/*
 * AWS SSO CLI
 * Copyright (c) 2021-2025 Aaron Turner  <synfinatic at gmail dot com>
 *
 * This program is free software: you can redistribute it
 * and/or modify it under the terms of the GNU General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or with the authors permission any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger wraps slog.Logger and implements CustomLogger.  The handler is
// rebuilt whenever the format or source reporting changes.
type Logger struct {
	slog      *slog.Logger
	create    NewLoggerFunc
	addSource bool
	color     bool
	level     *slog.LevelVar
	writer    io.Writer
}

// NewLogger creates a new Logger using the given handler constructor
func NewLogger(f NewLoggerFunc, w io.Writer, addSource bool, level slog.Leveler, color bool) *Logger {
	l := &Logger{
		create:    f,
		addSource: addSource,
		color:     color,
		writer:    w,
	}
	l.rebuild(level)
	return l
}

func (l *Logger) rebuild(level slog.Leveler) {
	handler, lvl := l.create(l.writer, l.addSource, level, l.color)
	l.level = lvl
	l.slog = slog.New(handler)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.LogWithSource(context.Background(), slog.LevelDebug, StackFrames, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.LogWithSource(context.Background(), slog.LevelInfo, StackFrames, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.LogWithSource(context.Background(), slog.LevelWarn, StackFrames, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.LogWithSource(context.Background(), slog.LevelError, StackFrames, msg, args...)
}

// Slog returns the underlying slog.Logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func (l *Logger) AddSource() bool {
	return l.addSource
}

// SetLevel sets the log level for the logger
func (l *Logger) SetLevel(level slog.Leveler) {
	l.level.Set(level.Level())
}

// SetLevelString sets the level by (case insensitive) name
func (l *Logger) SetLevelString(level string) error {
	lvl, ok := LevelStrings[strings.ToUpper(level)]
	if !ok {
		return fmt.Errorf("invalid log level: %s", level)
	}
	l.level.Set(lvl)
	return nil
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() slog.Level {
	return l.level.Level()
}

// SetReportCaller sets whether to include the source file and line number in the log output
func (l *Logger) SetReportCaller(reportCaller bool) {
	if l.addSource == reportCaller {
		return
	}
	l.addSource = reportCaller
	l.rebuild(l.level.Level())
}

// SetFormat switches the handler constructor, keeping the level, writer and
// source settings
func (l *Logger) SetFormat(f NewLoggerFunc) {
	l.create = f
	l.rebuild(l.level.Level())
}
