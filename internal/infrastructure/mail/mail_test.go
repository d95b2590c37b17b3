package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
	"github.com/rafabene/blog-backend/internal/infrastructure/logging"
)

type stubMailer struct {
	err  error
	sent []ports.Email
}

func (s *stubMailer) Send(_ context.Context, email ports.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func TestFallbackMailer(t *testing.T) {
	email := ports.Email{To: "ana@example.com", Subject: "Hi", HTML: "<p>hi</p>"}
	log := logging.NewNopLogger()

	t.Run("usa o primeiro provider quando funciona", func(t *testing.T) {
		primary, secondary := &stubMailer{}, &stubMailer{}
		m := NewFallbackMailer(log, Provider{"SMTP", primary}, Provider{"Resend", secondary})

		require.NoError(t, m.Send(context.Background(), email))
		assert.Len(t, primary.sent, 1)
		assert.Empty(t, secondary.sent)
	})

	t.Run("recorre ao segundo provider", func(t *testing.T) {
		primary, secondary := &stubMailer{err: errors.New("dial tcp: refused")}, &stubMailer{}
		m := NewFallbackMailer(log, Provider{"SMTP", primary}, Provider{"Resend", secondary})

		require.NoError(t, m.Send(context.Background(), email))
		assert.Len(t, secondary.sent, 1)
	})

	t.Run("erro cita as duas causas", func(t *testing.T) {
		m := NewFallbackMailer(log,
			Provider{"SMTP", &stubMailer{err: errors.New("auth failed")}},
			Provider{"Resend", &stubMailer{err: errors.New("quota exceeded")}},
		)

		err := m.Send(context.Background(), email)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SMTP: auth failed")
		assert.Contains(t, err.Error(), "Resend: quota exceeded")
	})
}

func TestNewFromConfig(t *testing.T) {
	log := logging.NewNopLogger()

	_, isLog := NewFromConfig(&config.Config{}, log).(*LogMailer)
	assert.True(t, isLog, "sem provider deveria apenas logar")

	cfg := &config.Config{
		SMTP:   config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u", From: "Blog App <u@example.com>"},
		Resend: config.ResendConfig{APIKey: "re_test", From: "Blog App <onboarding@resend.dev>"},
	}
	fallback, ok := NewFromConfig(cfg, log).(*FallbackMailer)
	require.True(t, ok)
	require.Len(t, fallback.providers, 2)
	assert.Equal(t, "SMTP", fallback.providers[0].Name)
	assert.Equal(t, "Resend", fallback.providers[1].Name)
}
