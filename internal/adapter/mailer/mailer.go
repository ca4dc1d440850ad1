// Package mailer sends outbound verification mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"gopkg.in/gomail.v2"

	"github.com/foodi-app/foodi-backend/internal/config"
)

// Mailer sends transactional mail. When SMTP is not configured it degrades
// to logging the would-be message, so local setups work without a relay.
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
	log    *slog.Logger
}

func New(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	m := &Mailer{
		cfg: cfg,
		log: logger.With("adapter", "mailer"),
	}
	if cfg.MailEnabled() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// SendVerification mails the email-verification link for a freshly issued
// token. The token arrives in raw form; only its hash is ever stored.
func (m *Mailer) SendVerification(ctx context.Context, email, rawToken string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.BaseURL, url.QueryEscape(rawToken))

	if m.dialer == nil {
		m.log.InfoContext(ctx, "mail disabled, skipping verification mail",
			slog.String("email", email))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify your Foodi account")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Welcome to Foodi!\n\nOpen the link below to verify your email address:\n\n%s\n\nThe link expires in 48 hours. If you did not sign up, you can ignore this message.\n", link))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Welcome to Foodi!</p><p><a href="%s">Verify your email address</a></p><p>The link expires in 48 hours. If you did not sign up, you can ignore this message.</p>`, link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer.SendVerification: %w", err)
	}

	m.log.InfoContext(ctx, "verification mail sent", slog.String("email", email))
	return nil
}
