package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler New builds.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string
	// Format selects the encoding, json or text. Empty means json.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
	// AddSource attaches the file:line of the logging call.
	AddSource bool
}

// DefaultConfig returns the production defaults: info-level JSON on
// stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// level backs every handler New has built. Adjusting it moves the
// whole process at once, which is what the config reload path needs.
var level = new(slog.LevelVar)

// New builds a *slog.Logger that redacts credential-looking string
// attributes and stamps records with the request ID carried by the
// call context.
func New(cfg Config) (*slog.Logger, error) {
	level.Set(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		h = slog.NewJSONHandler(out, opts)
	case "text":
		h = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(ctxHandler{h}), nil
}

// SetLevel retargets the shared level at runtime.
func SetLevel(s string) {
	level.Set(parseLevel(s))
}

// GetLevel reports the level currently in effect.
func GetLevel() string {
	return strings.ToLower(level.Level().String())
}

// parseLevel maps level names to slog levels. Unrecognized names fall
// back to info rather than failing, so a bad reload cannot silence
// the process.
func parseLevel(s string) slog.Level {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
