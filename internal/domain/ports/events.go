package ports

import "github.com/rafabene/blog-backend/internal/domain/entities"

// CommentPublisher notifica assinantes sobre novos comentários de um post
type CommentPublisher interface {
	PublishComment(comment *entities.Comment)
}
