package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// RandomSecrets gera códigos e tokens com crypto/rand
type RandomSecrets struct{}

// NewRandomSecrets cria um novo RandomSecrets
func NewRandomSecrets() *RandomSecrets {
	return &RandomSecrets{}
}

// VerificationCode gera um código numérico de 6 dígitos
func (*RandomSecrets) VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ResetToken gera um token aleatório (40 caracteres hex) e o hash persistido
func (s *RandomSecrets) ResetToken() (token, hash string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, s.HashToken(token), nil
}

// HashToken retorna o SHA-256 hex do token
func (*RandomSecrets) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
