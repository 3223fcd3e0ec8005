package app

import (
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
)

// logEmailProvider stands in for SMTP in local development. Messages are
// logged instead of delivered.
type logEmailProvider struct{}

func (p *logEmailProvider) Send(to, subject, htmlBody string) error {
	logger.Info("[email] send", "to", to, "subject", subject)
	return nil
}

func (p *logEmailProvider) SendVerification(to, username, token string) error {
	logger.Info("[email] verification", "to", to, "username", username, "token", token)
	return nil
}

func (p *logEmailProvider) SendNotification(to, subject, message string) error {
	logger.Info("[email] notification", "to", to, "subject", subject)
	return nil
}

func (p *logEmailProvider) SendAdminInvite(to, password string) error {
	logger.Info("[email] admin invite", "to", to)
	return nil
}
