package mail

import (
	"BookingBridge/entity"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

// SMTP delivers with PLAIN auth. net/smtp has no context support, so ctx is
// only checked before dialing.
type SMTP struct {
	host     string
	port     string
	user     string
	password string
	from     string
	now      func() time.Time
}

func newSMTP(host, port, user, password, from string) (*SMTP, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("smtp server not configured")
	}
	if from == "" {
		from = user
	}
	if from == "" {
		return nil, fmt.Errorf("mail sender address not configured")
	}
	return &SMTP{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		now:      time.Now,
	}, nil
}

func (s *SMTP) Send(ctx context.Context, msg *entity.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addrs, err := recipients(msg.To)
	if err != nil {
		return err
	}
	raw, err := compose(s.from, msg, s.now())
	if err != nil {
		return err
	}
	if err = smtp.SendMail(s.addr(), s.auth(), s.from, addrs, raw); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTP) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := smtp.Dial(s.addr())
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if ok, _ := c.Extension("AUTH"); ok && s.user != "" {
		if err = c.Auth(s.auth()); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	return c.Quit()
}

func (s *SMTP) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

func (s *SMTP) auth() smtp.Auth {
	if s.user == "" {
		return nil
	}
	return smtp.PlainAuth("", s.user, s.password, s.host)
}
