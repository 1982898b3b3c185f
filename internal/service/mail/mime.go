package mail

import (
	"BookingBridge/entity"
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	netmail "net/mail"
	"net/textproto"
	"strings"
	"time"
)

// compose renders msg as an RFC 5322 message. A message with an HTML body
// becomes multipart/alternative with the plain text part first.
func compose(from string, msg *entity.MailMessage, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	to, err := addressList(msg.To)
	if err != nil {
		return nil, err
	}
	rcpt := make([]string, 0, len(to))
	for _, a := range to {
		if a.Name == "" {
			rcpt = append(rcpt, a.Address)
			continue
		}
		rcpt = append(rcpt, a.String())
	}

	sender := netmail.Address{Name: msg.SenderName, Address: from}
	header := []struct{ key, value string }{
		{"From", sender.String()},
		{"To", strings.Join(rcpt, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
	}
	for _, h := range header {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}

	if !msg.HasHtml() {
		fmt.Fprintf(&buf, "Content-Type: text/plain; charset=UTF-8\r\n")
		fmt.Fprintf(&buf, "Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		if err := writeQuoted(&buf, msg.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	parts := []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", msg.Body},
		{"text/html; charset=UTF-8", msg.HtmlBody},
	}
	for _, p := range parts {
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("create part: %w", err)
		}
		if err = writeQuoted(pw, p.body); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), nil
}

func writeQuoted(w io.Writer, body string) error {
	qw := quotedprintable.NewWriter(w)
	if _, err := qw.Write([]byte(body)); err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	return qw.Close()
}

// recipients splits a comma separated To value into bare addresses.
func recipients(to string) ([]string, error) {
	list, err := addressList(to)
	if err != nil {
		return nil, err
	}
	addrs := make([]string, 0, len(list))
	for _, a := range list {
		addrs = append(addrs, a.Address)
	}
	return addrs, nil
}

// addressList parses an RFC 5322 address list. Line breaks are rejected
// outright so a recipient can never start a new header line.
func addressList(to string) ([]*netmail.Address, error) {
	if strings.ContainsAny(to, "\r\n") {
		return nil, fmt.Errorf("invalid recipient %q: line break", to)
	}
	list, err := netmail.ParseAddressList(to)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	return list, nil
}
