// Package mailer sends transactional email. Delivery is a capability
// interface so workflow logic can be exercised with test doubles instead of a
// real transport.
package mailer

import (
	"context"

	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New selects the delivery provider from config. Unknown providers fall back
// to SMTP.
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	switch config.Provider {
	case "sendgrid":
		log.Info("Using SendGrid email provider")
		return NewSendGridMailer(config, log)
	default:
		log.Info("Using SMTP email provider", zap.String("host", config.Host))
		return NewSMTPMailer(config, log)
	}
}
