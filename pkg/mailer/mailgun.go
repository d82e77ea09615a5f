package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

var _ Sender = (*Mailgun)(nil)

// Mailgun delivers rendered emails through the Mailgun messages API.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
}

// NewMailgun builds a sender for domain. An empty apiBase keeps the client default (US region).
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{client: client, sender: sender}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
