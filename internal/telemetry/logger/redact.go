package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys matching any of these substrings never reach the
// stream in the clear. stockd holds no credentials of its own; the
// list guards values arriving through config dumps or proxied
// headers.
var sensitiveKeySubstrings = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
}

const redactedPlaceholder = "***REDACTED***"

// redactSensitive replaces sensitive string values. Empty strings
// pass through, so absent optional fields stay recognizably absent.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if a.Value.String() != "" && isSensitiveKey(a.Key) {
			a.Value = slog.StringValue(redactedPlaceholder)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i := range attrs {
			redacted[i] = redactSensitive(attrs[i])
		}
		a.Value = slog.GroupValue(redacted...)
	}
	return a
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, sub := range sensitiveKeySubstrings {
		if strings.Contains(key, sub) {
			return true
		}
	}
	return false
}
