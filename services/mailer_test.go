package services

import "testing"

func TestNewSMTPMailer_DisabledWithoutHost(t *testing.T) {
	m := NewSMTPMailer("", 587, "", "", "", "admin@example.com")
	if _, ok := m.(noopMailer); !ok {
		t.Fatalf("expected noop mailer, got %T", m)
	}
	if err := m.NotifyAdmin("subject", "body"); err != nil {
		t.Fatalf("noop mailer must not fail: %v", err)
	}
}

func TestSMTPMailer_Message(t *testing.T) {
	m, ok := NewSMTPMailer("smtp.example.com", 587, "bot@example.com", "pw", "", "admin@example.com").(*SMTPMailer)
	if !ok {
		t.Fatalf("expected *SMTPMailer")
	}
	msg := m.message("New contact message", "hello")
	if got := msg.GetHeader("From"); len(got) != 1 || got[0] != "bot@example.com" {
		t.Fatalf("unexpected From %v", got)
	}
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "admin@example.com" {
		t.Fatalf("unexpected To %v", got)
	}
	if got := msg.GetHeader("Subject"); len(got) != 1 || got[0] != "[LocalXP] New contact message" {
		t.Fatalf("unexpected Subject %v", got)
	}
}
