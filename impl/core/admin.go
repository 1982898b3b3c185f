package core

import (
	"BookingBridge/entity"
	"context"
	"fmt"
	"log/slog"
)

const (
	testSubject    = "Test Email from Apps Script"
	testBody       = "This is a test email sent from Google Apps Script."
	testHtmlBody   = "<h1>Test Email</h1><p>This is a <strong>test email</strong> sent from Google Apps Script.</p>"
	testSenderName = "Discord Booking System Test"
)

// SendTestEmail delivers a fixed message to to, for checking the mail setup by hand.
func (c *Core) SendTestEmail(ctx context.Context, to string) error {
	if c.mailer == nil {
		return fmt.Errorf("mail service not available")
	}
	err := c.mailer.Send(ctx, &entity.MailMessage{
		To:         to,
		Subject:    testSubject,
		Body:       testBody,
		HtmlBody:   testHtmlBody,
		SenderName: testSenderName,
	})
	if err != nil {
		return fmt.Errorf("test email failed: %w", err)
	}
	c.log.With(slog.String("to", to)).Info("test email sent")
	return nil
}

// CheckMail asks the mail driver to confirm it may send, priming any
// delegated permissions on first use.
func (c *Core) CheckMail(ctx context.Context) error {
	if c.mailer == nil {
		return fmt.Errorf("mail service not available")
	}
	if err := c.mailer.Check(ctx); err != nil {
		return fmt.Errorf("permissions setup failed: %w", err)
	}
	return nil
}
