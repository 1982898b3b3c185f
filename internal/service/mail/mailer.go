package mail

import (
	"BookingBridge/entity"
	"BookingBridge/internal/config"
	"BookingBridge/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DriverGmail    = "gmail"
	DriverSendGrid = "sendgrid"
	DriverSMTP     = "smtp"
)

type Driver interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
	// Check verifies the driver is authorised to send, without sending anything.
	Check(ctx context.Context) error
}

type Service struct {
	driver Driver
	name   string
	log    *slog.Logger
}

func NewMailService(ctx context.Context, conf *config.Config, log *slog.Logger) (*Service, error) {
	var (
		driver Driver
		err    error
	)

	switch conf.Mail.Driver {
	case DriverGmail:
		driver, err = newGmailFromConfig(ctx, conf)
	case DriverSendGrid:
		driver, err = newSendGrid(conf.Mail.SendGrid.ApiKey, conf.Mail.From, conf.Mail.SendGrid.Host)
	case DriverSMTP:
		driver, err = newSMTP(conf.Mail.SMTP.Host, conf.Mail.SMTP.Port, conf.Mail.SMTP.User, conf.Mail.SMTP.Password, conf.Mail.From)
	default:
		err = fmt.Errorf("unknown mail driver %q", conf.Mail.Driver)
	}
	if err != nil {
		return nil, err
	}

	return New(conf.Mail.Driver, driver, log), nil
}

func New(name string, driver Driver, log *slog.Logger) *Service {
	return &Service{
		driver: driver,
		name:   name,
		log:    log.With(sl.Module("mail"), slog.String("driver", name)),
	}
}

func (s *Service) Send(ctx context.Context, msg *entity.MailMessage) error {
	t1 := time.Now()
	if err := s.driver.Send(ctx, msg); err != nil {
		s.log.With(
			slog.String("to", msg.To),
			sl.Err(err),
		).Error("send email")
		return err
	}
	s.log.With(
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Bool("html", msg.HasHtml()),
		slog.Float64("duration", time.Since(t1).Seconds()),
	).Info("email sent")
	return nil
}

func (s *Service) Check(ctx context.Context) error {
	if err := s.driver.Check(ctx); err != nil {
		s.log.With(sl.Err(err)).Error("mail permissions")
		return err
	}
	s.log.Info("mail permissions ok")
	return nil
}
