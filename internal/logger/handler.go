package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

const (
	FrameMarker = "__skip_frames"
	Redacted    = "********"
)

// attribute keys whose values are SSO access tokens or AWS secrets.  Keys
// are compared lower case with '_' and '-' removed.
var secretKeys = map[string]bool{
	"accesstoken":        true,
	"refreshtoken":       true,
	"clientsecret":       true,
	"secretaccesskey":    true,
	"awssecretaccesskey": true,
	"sessiontoken":       true,
	"awssessiontoken":    true,
}

// frameHandler wraps the console and json handlers so that records logged
// via LogWithSource report the caller of our Logger instead of the Logger
type frameHandler struct {
	slog.Handler
}

func (h *frameHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.Handler.Handle(ctx, fixupSource(r))
}

// fixupSource rewrites the record PC when LogWithSource tagged it with
// the number of frames to skip
func fixupSource(r slog.Record) slog.Record {
	var skip int64
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == FrameMarker {
			skip = a.Value.Int64()
			return false
		}
		return true
	})

	if skip == 0 {
		return r
	}

	rn := r.Clone()
	// +1 for this function
	rn.PC, _, _, _ = runtime.Caller(int(skip) + 1)
	return rn
}

// levelName returns the level name for the record, colorized if requested
func levelName(a slog.Attr, color bool) slog.Attr {
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	if lc, ok := LevelColorsMap[level]; ok {
		a.Value = slog.StringValue(lc.String(color))
	}
	return a
}

// redactSecret hides the value of credential attributes so neither
// handler can leak a token into a terminal or a log pipeline
func redactSecret(a slog.Attr) slog.Attr {
	key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(a.Key))
	if secretKeys[key] && a.Value.String() != "" {
		a.Value = slog.StringValue(Redacted)
	}
	return a
}
