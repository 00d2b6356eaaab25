// Package mail delivers notification e-mails.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"blog/config"
	"blog/internal/domain"
)

// SMTPSender implements domain.MailSender over SMTP. A connection is opened
// per message; volume is one message per subscriber per published post.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPolicy(tlsPolicy(cfg.TLSPolicy)),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

func tlsPolicy(name string) gomail.TLSPolicy {
	switch name {
	case "mandatory":
		return gomail.TLSMandatory
	case "none":
		return gomail.NoTLS
	default:
		return gomail.TLSOpportunistic
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg domain.MailMessage) error {
	m, err := buildMessage(s.from, msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMailDelivery, err)
	}
	return nil
}

func buildMessage(from string, msg domain.MailMessage) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("%w: invalid sender %q: %w", domain.ErrMailDelivery, from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient %q: %w", domain.ErrMailDelivery, msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

// LogSender writes messages to the log instead of sending them. Used when
// MAIL_ENABLED is false.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg domain.MailMessage) error {
	s.logger.InfoContext(ctx, "mail delivery disabled, message logged",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
