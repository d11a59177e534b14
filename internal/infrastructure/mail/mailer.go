package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"itapp/internal/config"
)

// Mailer renders the account and placement emails. A Mailer without a sender
// drops every message.
type Mailer struct {
	from    string
	appName string
	sender  Sender
}

func NewMailer(cfg config.MailerConfig, appName string, sender Sender) *Mailer {
	if sender == nil && strings.TrimSpace(cfg.Host) != "" {
		sender = NewSMTPSender(cfg)
	}
	return &Mailer{from: cfg.From, appName: appName, sender: sender}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.sender != nil
}

func (m *Mailer) Welcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour %s account has been created.\n", name, m.appName)
	return m.send(ctx, to, "Welcome to "+m.appName, body)
}

func (m *Mailer) Accepted(ctx context.Context, to, name, jobTitle string, start, end time.Time) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have been accepted for %s.\nYour placement runs from %s to %s.\n",
		name, jobTitle, start.Format("2006-01-02"), end.Format("2006-01-02"),
	)
	return m.send(ctx, to, "Internship placement accepted", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	return m.sender.Send(ctx, Message{From: m.from, To: []string{to}, Subject: subject, Body: body})
}
