package valueobjects

import (
	"regexp"
	"strings"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
)

const (
	maxEmailLength      = 254
	maxEmailLocalLength = 64
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email é um endereço já normalizado (trim + lower-case) e validado
type Email struct {
	value string
}

// NewEmail normaliza e valida o endereço; falha com domainerrors.ErrInvalidEmail
func NewEmail(raw string) (Email, error) {
	email := NormalizeEmail(raw)

	local, _, found := strings.Cut(email, "@")
	if !found || len(local) > maxEmailLocalLength || len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return Email{}, domainerrors.ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// NormalizeEmail é a forma usada na gravação e nas buscas
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (e Email) String() string {
	return e.value
}
