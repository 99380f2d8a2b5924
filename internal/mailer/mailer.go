// Package mailer sends transactional email. The Postmark-backed mailer is
// used when a server token is configured; otherwise the log-only mailer
// records sends without delivering anything.
package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
	"github.com/rs/zerolog/log"
)

type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	Tag      string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Postmark struct {
	client *postmark.Client
	from   string
}

func NewPostmark(serverToken, accountToken, from string) (*Postmark, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("mailer.NewPostmark: server token is required")
	}
	if from == "" {
		return nil, fmt.Errorf("mailer.NewPostmark: from address is required")
	}

	return &Postmark{
		client: postmark.NewClient(serverToken, accountToken),
		from:   from,
	}, nil
}

func (m *Postmark) Send(ctx context.Context, msg Message) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.from,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
		Tag:      msg.Tag,
	})
	if err != nil {
		return fmt.Errorf("mailer.Postmark.Send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("mailer.Postmark.Send: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	return nil
}

// LogOnly is the development mailer. It logs the send and drops the message.
type LogOnly struct{}

func (LogOnly) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("tag", msg.Tag).
		Msg("mail suppressed (no email provider configured)")
	return nil
}
