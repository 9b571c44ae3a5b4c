package ports

import "context"

// Mailer define a interface para envio de emails transacionais
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
	SendPasswordResetEmail(ctx context.Context, to, link string) error
}
