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
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewConsole is the default handler.  ssocreds is normally run by hand
// right before another AWS tool so timestamps are dropped and the level
// is only colored when stderr is a terminal.
func NewConsole(w io.Writer, addSource bool, level slog.Leveler, color bool) (slog.Handler, *slog.LevelVar) {
	lvl := new(slog.LevelVar)
	lvl.Set(level.Level())

	opts := tint.Options{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceAttrConsole(color),
		NoColor:     true, // levelName does the coloring
	}

	return &frameHandler{tint.NewHandler(w, &opts)}, lvl
}

func replaceAttrConsole(color bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey, FrameMarker:
			return slog.Attr{}
		case slog.LevelKey:
			return levelName(a, color)
		}
		return redactSecret(a)
	}
}
