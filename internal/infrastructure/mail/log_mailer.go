package mail

import (
	"context"

	"github.com/rafabene/blogpro-backend/internal/domain/ports"
)

// LogMailer implementa ports.Mailer apenas registrando os links no log.
// Usado em desenvolvimento, quando não há servidor SMTP configurado.
type LogMailer struct {
	logger ports.Logger
}

// NewLogMailer cria um novo LogMailer
func NewLogMailer(logger ports.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	m.logger.Info("verification email (dev mode)", "to", to, "link", link)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(ctx context.Context, to, link string) error {
	m.logger.Info("password reset email (dev mode)", "to", to, "link", link)
	return nil
}
