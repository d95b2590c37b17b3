package ports

import (
	"context"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// TokenClaims são os dados extraídos de um bearer token válido
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager emite e valida bearer tokens assinados
type TokenManager interface {
	Issue(userID string) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// PasswordHasher gera e compara hashes de senha com salt
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// RevocationList guarda IDs de tokens revogados até sua expiração
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RateCounter conta eventos por chave dentro de uma janela
type RateCounter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// SecretGenerator gera o código de verificação e o token de reset de senha.
// Apenas HashToken(token) é persistido.
type SecretGenerator interface {
	VerificationCode() (string, error)
	ResetToken() (token, hash string, err error)
	HashToken(token string) string
}

// Identity é o usuário autenticado de uma requisição junto com as claims do token
type Identity struct {
	User   *entities.User
	Claims *TokenClaims
}

// UserID retorna o ID do usuário autenticado
func (i *Identity) UserID() string {
	return i.User.ID
}

// Can verifica se o usuário tem a permissão
func (i *Identity) Can(permission entities.Permission) bool {
	return i.User.HasPermission(permission)
}
