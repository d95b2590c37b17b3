package repositories

import (
	"context"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// CommentRepository define a interface para persistência de comentários
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id string) (*entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
	List(ctx context.Context, filters CommentFilters) ([]*entities.Comment, error)
}

// CommentFilters contém filtros para listagem de comentários
type CommentFilters struct {
	PostID           string
	IncludeSuspended bool
	NewestFirst      bool
}
