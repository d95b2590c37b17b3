package mail

import (
	"context"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
)

// ResendMailer envia emails pela API HTTP do Resend
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer cria um ResendMailer a partir da configuração
func NewResendMailer(cfg *config.ResendConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}
}

var _ ports.Mailer = (*ResendMailer)(nil)

func (m *ResendMailer) Send(ctx context.Context, email ports.Email) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	return errors.Wrap(err, "resend send")
}
