// Package smtp delivers email through an SMTP relay.
package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/email"
	"github.com/wneessen/go-mail"
)

// TLS modes accepted by Config.TLS.
const (
	TLSStartTLS = "starttls"
	TLSImplicit = "implicit"
	TLSNone     = "none"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      string
}

// Sender is an email.Sender backed by go-mail.
type Sender struct {
	client *mail.Client
}

// New builds a client for cfg. No connection is made until Send.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp: host is required")
	}

	opts := []mail.Option{}
	switch cfg.TLS {
	case "", TLSStartTLS:
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	case TLSImplicit:
		opts = append(opts, mail.WithSSLPort(false))
	case TLSNone:
		opts = append(opts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		return nil, fmt.Errorf("smtp: unknown tls mode %q", cfg.TLS)
	}
	if cfg.Port != 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return &Sender{client: client}, nil
}

func (s *Sender) Send(ctx context.Context, msg email.Message) error {
	m, err := buildMessage(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

func buildMessage(msg email.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From.String()); err != nil {
		return nil, fmt.Errorf("smtp: from: %w", err)
	}
	if err := m.To(msg.To.String()); err != nil {
		return nil, fmt.Errorf("smtp: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}
	return m, nil
}
