package mail

import (
	"BookingBridge/entity"
	"BookingBridge/internal/config"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"testing"
)

type fakeDriver struct {
	sent     []*entity.MailMessage
	sendErr  error
	checkErr error
}

func (f *fakeDriver) Send(_ context.Context, msg *entity.MailMessage) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeDriver) Check(_ context.Context) error {
	return f.checkErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_SendAndCheck(t *testing.T) {
	driver := &fakeDriver{}
	svc := New("fake", driver, discardLogger())

	require.NoError(t, svc.Send(context.Background(), &entity.MailMessage{To: "a@b.com", Subject: "s", Body: "b"}))
	assert.Len(t, driver.sent, 1)
	assert.NoError(t, svc.Check(context.Background()))

	driver.sendErr = errors.New("quota exhausted")
	driver.checkErr = errors.New("no permission")
	assert.ErrorContains(t, svc.Send(context.Background(), &entity.MailMessage{To: "a@b.com"}), "quota exhausted")
	assert.ErrorContains(t, svc.Check(context.Background()), "no permission")
}

func TestNewMailService_Drivers(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(conf *config.Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			setup:   func(conf *config.Config) { conf.Mail.Driver = "pigeon" },
			wantErr: "unknown mail driver",
		},
		{
			name: "gmail without sender",
			setup: func(conf *config.Config) {
				conf.Mail.Driver = DriverGmail
			},
			wantErr: "sender address",
		},
		{
			name: "gmail missing credentials",
			setup: func(conf *config.Config) {
				conf.Mail.Driver = DriverGmail
				conf.Mail.From = "booking@example.com"
				conf.Mail.CredentialsFile = "/nonexistent/credentials.json"
			},
			wantErr: "read gmail credentials",
		},
		{
			name: "sendgrid without key",
			setup: func(conf *config.Config) {
				conf.Mail.Driver = DriverSendGrid
				conf.Mail.From = "booking@example.com"
			},
			wantErr: "api key",
		},
		{
			name: "smtp",
			setup: func(conf *config.Config) {
				conf.Mail.Driver = DriverSMTP
				conf.Mail.SMTP.Host = "smtp.example.com"
				conf.Mail.SMTP.Port = "587"
				conf.Mail.SMTP.User = "booking@example.com"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &config.Config{}
			tt.setup(conf)
			svc, err := NewMailService(context.Background(), conf, discardLogger())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}
