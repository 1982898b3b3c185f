package logger

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

type recordingSender struct {
	messages []string
}

func (s *recordingSender) SendMessage(msg string) {
	s.messages = append(s.messages, msg)
}

func TestTelegramHandler_ForwardsOnlyAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sender := &recordingSender{}

	log := SetupTelegramHandler(base, sender, slog.LevelError).With(slog.String("module", "notifier"))
	log.Info("row dispatched", slog.Int("row", 4))
	log.Error("send webhook", slog.String("error", "connection refused"))

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "ERROR: send webhook")
	assert.Contains(t, sender.messages[0], "module: notifier")
	assert.Contains(t, sender.messages[0], "error: connection refused")

	assert.Contains(t, buf.String(), "row dispatched")
	assert.Contains(t, buf.String(), "send webhook")
}

func TestTelegramHandler_QualifiesGroupKeys(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	sender := &recordingSender{}

	log := SetupTelegramHandler(base, sender, slog.LevelError).
		With(slog.String("module", "mail")).
		WithGroup("smtp").
		With(slog.String("host", "smtp.example.com")).
		WithGroup("auth")
	log.Error("handshake failed", slog.String("user", "booking"))

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Contains(t, msg, "\nmodule: mail")
	assert.Contains(t, msg, "\nsmtp.host: smtp.example.com")
	assert.Contains(t, msg, "\nsmtp.auth.user: booking")
	assert.Contains(t, buf.String(), "smtp.auth.user=booking")
}

func TestSetupLogger_FallsBackToStdout(t *testing.T) {
	log := SetupLogger("prod", "/nonexistent/dir/for/logs")
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}
