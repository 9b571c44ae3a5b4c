package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/config"
)

// SMTPMailer implementa ports.Mailer entregando emails via SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger ports.Logger
}

// NewSMTPMailer cria um novo SMTPMailer a partir da configuração
func NewSMTPMailer(cfg *config.SMTPConfig, logger ports.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendVerificationEmail envia o email de verificação de conta
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	body := fmt.Sprintf(
		"<p>Welcome! Please verify your account by clicking the link below.</p>"+
			"<p><a href=%q>Verify my email</a></p>"+
			"<p>This link expires in 24 hours.</p>", link)
	return m.send(to, "Verify your email address", body)
}

// SendPasswordResetEmail envia o email de redefinição de senha
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, link string) error {
	body := fmt.Sprintf(
		"<p>We received a request to reset your password.</p>"+
			"<p><a href=%q>Reset my password</a></p>"+
			"<p>This link expires in 1 hour. If you did not request a reset, ignore this email.</p>", link)
	return m.send(to, "Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}
