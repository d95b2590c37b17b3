package mail

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
)

// SMTPMailer envia emails HTML por SMTP com STARTTLS
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer cria um SMTPMailer a partir da configuração
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(ctx context.Context, email ports.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	return errors.Wrap(m.dialer.DialAndSend(msg), "smtp send")
}
