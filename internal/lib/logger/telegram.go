package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type MessageSender interface {
	SendMessage(msg string)
}

// TelegramHandler forwards records at or above level to a chat, in addition
// to passing everything to the wrapped handler.
type TelegramHandler struct {
	next   slog.Handler
	sender MessageSender
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

func SetupTelegramHandler(log *slog.Logger, sender MessageSender, level slog.Level) *slog.Logger {
	return slog.New(&TelegramHandler{
		next:   log.Handler(),
		sender: sender,
		level:  level,
	})
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || h.next.Enabled(ctx, level)
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}
	if r.Level >= h.level && h.sender != nil {
		h.sender.SendMessage(h.format(r))
	}
	return err
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		merged = append(merged, h.qualify(a))
	}
	return &TelegramHandler{
		next:   h.next.WithAttrs(attrs),
		sender: h.sender,
		level:  h.level,
		attrs:  merged,
		group:  h.group,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &TelegramHandler{
		next:   h.next.WithGroup(name),
		sender: h.sender,
		level:  h.level,
		attrs:  h.attrs,
		group:  group,
	}
}

// qualify prefixes the key with the open groups, the way the text handler does.
func (h *TelegramHandler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

func (h *TelegramHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
	for _, a := range h.attrs {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		a = h.qualify(a)
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		return true
	})
	return b.String()
}
