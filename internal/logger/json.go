package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	slogjson "github.com/veqryn/slog-json"
)

// NewJSON is the --log-format=json handler, for when ssocreds runs under
// a credential_process or CI wrapper that collects stderr.  Every record
// is a single line so a failed exchange and its retry stay greppable.
func NewJSON(w io.Writer, addSource bool, level slog.Leveler, _ bool) (slog.Handler, *slog.LevelVar) {
	lvl := new(slog.LevelVar)
	lvl.Set(level.Level())

	opts := slogjson.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceAttrJson,
		JSONOptions: json.JoinOptions(
			// stable key order for profile, file and kind attrs
			json.Deterministic(true),
			jsontext.AllowDuplicateNames(true),
			// INI values and cache paths are logged as read from disk
			jsontext.AllowInvalidUTF8(true),
			jsontext.SpaceAfterColon(false),
			jsontext.SpaceAfterComma(true),
		),
	}

	return &frameHandler{slogjson.NewHandler(w, &opts)}, lvl
}

// replaceAttrJson drops our internal frame marker, writes plain level
// names without padding and redacts secrets
func replaceAttrJson(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case FrameMarker:
		return slog.Attr{}
	case slog.LevelKey:
		a = levelName(a, false)
		a.Value = slog.StringValue(strings.TrimSpace(a.Value.String()))
		return a
	}
	return redactSecret(a)
}
