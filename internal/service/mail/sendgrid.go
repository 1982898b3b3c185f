package mail

import (
	"BookingBridge/entity"
	"context"
	"encoding/json"
	"fmt"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendScope = "mail.send"

type SendGrid struct {
	apiKey string
	from   string
	host   string
}

func newSendGrid(apiKey, from, host string) (*SendGrid, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key not configured")
	}
	if from == "" {
		return nil, fmt.Errorf("mail sender address not configured")
	}
	return &SendGrid{
		apiKey: apiKey,
		from:   from,
		host:   host,
	}, nil
}

func (s *SendGrid) Send(ctx context.Context, msg *entity.MailMessage) error {
	addrs, err := recipients(msg.To)
	if err != nil {
		return err
	}

	message := sgmail.NewV3Mail()
	message.SetFrom(sgmail.NewEmail(msg.SenderName, s.from))
	message.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, addr := range addrs {
		p.AddTos(sgmail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)

	message.AddContent(sgmail.NewContent("text/plain", msg.Body))
	if msg.HasHtml() {
		message.AddContent(sgmail.NewContent("text/html", msg.HtmlBody))
	}

	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = "POST"
	req.Body = sgmail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *SendGrid) Check(ctx context.Context) error {
	req := sendgrid.GetRequest(s.apiKey, "/v3/scopes", s.host)
	req.Method = "GET"

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid scopes: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with %d: %s", resp.StatusCode, resp.Body)
	}

	var scopes struct {
		Scopes []string `json:"scopes"`
	}
	if err = json.Unmarshal([]byte(resp.Body), &scopes); err != nil {
		return fmt.Errorf("decode scopes: %w", err)
	}
	for _, scope := range scopes.Scopes {
		if scope == sendScope {
			return nil
		}
	}
	return fmt.Errorf("sendgrid key lacks %s scope", sendScope)
}
