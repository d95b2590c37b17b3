package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
)

// Provider é um mailer identificado pelo nome usado nos logs e erros
type Provider struct {
	Name   string
	Mailer ports.Mailer
}

// FallbackMailer tenta cada provider em ordem até um deles aceitar a mensagem
type FallbackMailer struct {
	providers []Provider
	logger    ports.Logger
}

// NewFallbackMailer cria um FallbackMailer
func NewFallbackMailer(logger ports.Logger, providers ...Provider) *FallbackMailer {
	return &FallbackMailer{providers: providers, logger: logger}
}

var _ ports.Mailer = (*FallbackMailer)(nil)

func (m *FallbackMailer) Send(ctx context.Context, email ports.Email) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email provider configured")
	}

	failures := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		err := p.Mailer.Send(ctx, email)
		if err == nil {
			m.logger.Info("email sent", "provider", p.Name, "to", email.To, "subject", email.Subject)
			return nil
		}

		m.logger.Warn("email provider failed", "provider", p.Name, "to", email.To, "error", err)
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name, err))
	}

	return fmt.Errorf("all email services failed. %s", strings.Join(failures, ". "))
}

// LogMailer apenas registra a mensagem; usado em desenvolvimento sem provider configurado
type LogMailer struct {
	logger ports.Logger
}

// NewLogMailer cria um LogMailer
func NewLogMailer(logger ports.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, email ports.Email) error {
	m.logger.Info("email not sent, no provider configured", "to", email.To, "subject", email.Subject)
	return nil
}

// NewFromConfig monta a cadeia SMTP → Resend com os providers configurados
func NewFromConfig(cfg *config.Config, logger ports.Logger) ports.Mailer {
	var providers []Provider
	if cfg.SMTP.Host != "" && cfg.SMTP.User != "" {
		providers = append(providers, Provider{Name: "SMTP", Mailer: NewSMTPMailer(&cfg.SMTP)})
	}
	if cfg.Resend.APIKey != "" {
		providers = append(providers, Provider{Name: "Resend", Mailer: NewResendMailer(&cfg.Resend)})
	}

	if len(providers) == 0 {
		logger.Warn("no email provider configured, emails will only be logged")
		return NewLogMailer(logger)
	}
	return NewFallbackMailer(logger, providers...)
}
