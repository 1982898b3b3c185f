package mail

import (
	"BookingBridge/entity"
	"BookingBridge/internal/config"
	"context"
	"encoding/base64"
	"fmt"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"os"
	"strings"
	"time"
)

// Gmail sends through the Gmail API as the configured mailbox, the same
// account that owns the booking spreadsheet.
type Gmail struct {
	api  *gmail.Service
	from string
	now  func() time.Time
}

// newGmailFromConfig impersonates conf.Mail.From with a service account that
// has domain-wide delegation for the send and metadata scopes.
func newGmailFromConfig(ctx context.Context, conf *config.Config) (*Gmail, error) {
	if conf.Mail.From == "" {
		return nil, fmt.Errorf("mail sender address not configured")
	}
	data, err := os.ReadFile(conf.Mail.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail credentials: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(data, gmail.GmailSendScope, gmail.GmailMetadataScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	jwt.Subject = conf.Mail.From

	return NewGmail(ctx, conf.Mail.From, option.WithHTTPClient(jwt.Client(ctx)))
}

func NewGmail(ctx context.Context, from string, opts ...option.ClientOption) (*Gmail, error) {
	api, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail client: %w", err)
	}
	return &Gmail{
		api:  api,
		from: from,
		now:  time.Now,
	}, nil
}

func (g *Gmail) Send(ctx context.Context, msg *entity.MailMessage) error {
	raw, err := compose(g.from, msg, g.now())
	if err != nil {
		return err
	}
	sent, err := g.api.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return fmt.Errorf("gmail send: empty response")
	}
	return nil
}

func (g *Gmail) Check(ctx context.Context) error {
	profile, err := g.api.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail profile: %w", err)
	}
	if profile.EmailAddress != "" && !strings.EqualFold(profile.EmailAddress, g.from) {
		return fmt.Errorf("gmail authorised as %s, expected %s", profile.EmailAddress, g.from)
	}
	return nil
}
