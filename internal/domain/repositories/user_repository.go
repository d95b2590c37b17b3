package repositories

import (
	"context"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Buscas retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*entities.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	// ClearExpiredTokens limpa códigos de verificação e tokens de reset vencidos
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Role     *entities.Role
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (0 = todos)
}
