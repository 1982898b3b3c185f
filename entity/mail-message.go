package entity

// MailMessage is an outgoing email as handed to a mail driver.
type MailMessage struct {
	To         string
	Subject    string
	Body       string
	HtmlBody   string
	SenderName string
}

func (m *MailMessage) HasHtml() bool {
	return m.HtmlBody != ""
}
