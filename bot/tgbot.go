package bot

import (
	"BookingBridge/internal/lib/sl"
	"fmt"
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"log/slog"
	"sync"
	"time"
)

// telegram rejects messages longer than this
const maxMessageLength = 4096

// TgBot delivers plain text alerts to the admin chat.
type TgBot struct {
	log     *slog.Logger
	send    func(chatId int64, text string) error
	adminId int64
	pending sync.WaitGroup
}

func NewTgBot(apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:     log.With(sl.Module("tgbot")),
		adminId: adminId,
	}

	api, err := tgbotapi.NewBot(apiKey, &tgbotapi.BotOpts{
		RequestOpts: &tgbotapi.RequestOpts{
			Timeout: 10 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.send = func(chatId int64, text string) error {
		_, err := api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		return err
	}

	return tgBot, nil
}

// SendMessage sends msg to the admin without blocking the caller.
func (t *TgBot) SendMessage(msg string) {
	if t.adminId == 0 || msg == "" {
		return
	}
	if runes := []rune(msg); len(runes) > maxMessageLength {
		msg = string(runes[:maxMessageLength])
	}
	t.pending.Add(1)
	go func() {
		defer t.pending.Done()
		t.plainResponse(t.adminId, msg)
	}()
}

// Flush waits up to timeout for messages still in flight.
func (t *TgBot) Flush(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		t.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	if err := t.send(chatId, text); err != nil {
		// warn only: error records are forwarded back to telegram
		t.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
	}
}
