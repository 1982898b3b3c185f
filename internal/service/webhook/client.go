package webhook

import (
	"BookingBridge/internal/config"
	"BookingBridge/internal/lib/sl"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const userAgent = "BookingBridge/1.0"

// Delivery describes a POST that reached the server. Any status code counts
// as delivered; callers decide what to make of it.
type Delivery struct {
	ID         string
	StatusCode int
	Body       string
}

type Client struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewWebhookClient(conf *config.Config, log *slog.Logger) *Client {
	return New(conf.Notifier.WebhookURL, &http.Client{Timeout: conf.Notifier.Timeout}, log)
}

func New(url string, client *http.Client, log *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		url:    url,
		client: client,
		log:    log.With(sl.Module("webhook")),
	}
}

// Post sends payload as JSON. Only marshalling and transport failures are errors.
func (c *Client) Post(ctx context.Context, payload interface{}) (*Delivery, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Delivery-ID", id)

	t1 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send webhook: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.With(
			slog.String("delivery_id", id),
			sl.Err(err),
		).Warn("read webhook response")
	}

	delivery := &Delivery{
		ID:         id,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}

	c.log.With(
		slog.String("delivery_id", id),
		slog.Int("status", resp.StatusCode),
		slog.String("response", delivery.Body),
		slog.Float64("duration", time.Since(t1).Seconds()),
	).Info("webhook delivered")

	return delivery, nil
}
