package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends admin notices through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer returns a mailer for the admin mailbox. Without a host or a
// recipient it returns a mailer that drops every notice.
func NewSMTPMailer(host string, port int, user, pass, from, to string) AdminMailer {
	if host == "" || to == "" {
		log.Println("SMTP not configured, admin email notices are disabled")
		return noopMailer{}
	}
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

func (m *SMTPMailer) message(subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "[LocalXP] "+subject)
	msg.SetBody("text/plain", body)
	return msg
}

func (m *SMTPMailer) NotifyAdmin(subject, body string) error {
	if err := m.dialer.DialAndSend(m.message(subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
