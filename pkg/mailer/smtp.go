package mailer

import (
	"context"
	"crypto/tls"
	"fmt"

	"gym-management/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

// Send dials per message. gomail has no context support; the call is bounded
// by the SMTP server's own timeouts.
func (m *smtpMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.config.Host == "" || m.config.User == "" {
		return fmt.Errorf("smtp not configured")
	}

	from := m.config.From
	if from == "" {
		from = m.config.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(from, m.config.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.User, m.config.Password)
	dialer.TLSConfig = &tls.Config{ServerName: m.config.Host}

	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
