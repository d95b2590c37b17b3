package repositories

import (
	"context"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts e reações.
// Buscas retornam (nil, nil) quando o registro não existe.
type PostRepository interface {
	// Create falha com ErrDuplicateKey quando o slug já existe
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// Update falha com ErrDuplicateKey quando o novo slug já existe
	Update(ctx context.Context, post *entities.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	// RenameCategory propaga a troca de nome da categoria para os posts
	RenameCategory(ctx context.Context, oldName, newName string) (int64, error)
	// SetReaction grava a reação do usuário (nil remove) e retorna os totais atualizados
	SetReaction(ctx context.Context, postID, userID string, kind *entities.ReactionKind) (entities.ReactionCounts, error)
}

// PostFilters contém filtros para listagem de posts (sempre do mais novo ao mais antigo)
type PostFilters struct {
	Status    *entities.PostStatus
	UserID    string
	Keyword   string // substring do título, sem diferenciar maiúsculas
	Category  string // nome da categoria
	ExcludeID string
	Page      int // Página (começa em 1)
	PageSize  int // Itens por página (0 = todos)
}
