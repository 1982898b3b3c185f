package sl

import (
	"log/slog"
	"strings"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(mod),
	}
}

// Secret keeps only the first and last characters of a value.
func Secret(key, value string) slog.Attr {
	if len(value) < 8 {
		return slog.String(key, strings.Repeat("*", len(value)))
	}
	return slog.String(key, value[:2]+"***"+value[len(value)-2:])
}
