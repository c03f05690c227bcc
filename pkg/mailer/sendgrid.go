package mailer

import (
	"context"
	"fmt"

	"gym-management/pkg/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSendGridMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &sendGridMailer{
		config: config,
		log:    log.With(zap.String("mailer", "sendgrid")),
	}
}

func (m *sendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.config.SendGridAPIKey == "" || m.config.From == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(m.config.FromName, m.config.From)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, htmlBody, htmlBody)

	client := sendgrid.NewSendClient(m.config.SendGridAPIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		m.log.Error("SendGrid rejected email",
			zap.Int("status_code", response.StatusCode),
			zap.String("to", to),
		)
		return fmt.Errorf("sendgrid status %d", response.StatusCode)
	}

	m.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
