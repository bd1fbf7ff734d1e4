package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers a plain-text message. Fire-and-forget from the engine's
// perspective: a failure surfaces to the caller but never undoes database
// state that already committed.
type Mailer interface {
	Send(to, from, subject, body string) error
}

type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	hostname string
}

func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	m := &SMTPMailer{
		addr:     host + ":" + port,
		hostname: host,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

func (m *SMTPMailer) Send(to, from, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	if err := smtp.SendMail(m.addr, m.auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
