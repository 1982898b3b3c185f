package core

import (
	"BookingBridge/entity"
	"BookingBridge/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

const DefaultSenderName = "Discord Booking System"

type Mailer interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
	Check(ctx context.Context) error
}

type Core struct {
	mailer     Mailer
	senderName string
	log        *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		senderName: DefaultSenderName,
		log:        log.With(sl.Module("core")),
	}
}

func (c *Core) SetMailer(mailer Mailer) {
	c.mailer = mailer
}

func (c *Core) SetSenderName(name string) {
	if name != "" {
		c.senderName = name
	}
}

// SendEmail relays a validated request. Panics in the mail driver are
// returned as errors.
func (c *Core) SendEmail(ctx context.Context, req *entity.EmailRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.With(slog.Any("panic", r)).Error("send email")
			err = fmt.Errorf("send email: %v", r)
		}
	}()

	if c.mailer == nil {
		return fmt.Errorf("mail service not available")
	}
	return c.mailer.Send(ctx, req.Message(c.senderName))
}
