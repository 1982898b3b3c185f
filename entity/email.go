package entity

import (
	"BookingBridge/internal/lib/validate"
	"net/http"
)

type EmailRequest struct {
	To         string      `json:"to" validate:"required"`
	Subject    string      `json:"subject" validate:"required"`
	Body       string      `json:"body" validate:"required"`
	HtmlBody   string      `json:"htmlBody,omitempty" validate:"omitempty"`
	SenderName string      `json:"senderName,omitempty" validate:"omitempty"`
	Test       interface{} `json:"test,omitempty"`
}

func (e *EmailRequest) Bind(_ *http.Request) error {
	return validate.Struct(e)
}

// IsTest reports whether the request asked for a dry run. Only a JSON
// boolean true counts.
func (e *EmailRequest) IsTest() bool {
	test, ok := e.Test.(bool)
	return ok && test
}

// Message builds the outgoing mail, using defaultSender when the request
// carries no display name.
func (e *EmailRequest) Message(defaultSender string) *MailMessage {
	sender := e.SenderName
	if sender == "" {
		sender = defaultSender
	}
	return &MailMessage{
		To:         e.To,
		Subject:    e.Subject,
		Body:       e.Body,
		HtmlBody:   e.HtmlBody,
		SenderName: sender,
	}
}
