package services

import (
	"context"
	"strings"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// CommentService contém a criação e a moderação de comentários
type CommentService struct {
	comments  repositories.CommentRepository
	posts     repositories.PostRepository
	users     repositories.UserRepository
	publisher ports.CommentPublisher
	logger    ports.Logger
}

// NewCommentService cria um novo CommentService; publisher pode ser nil
func NewCommentService(
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
	users repositories.UserRepository,
	publisher ports.CommentPublisher,
	logger ports.Logger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Create registra o comentário do usuário e o publica no feed ao vivo do post
func (s *CommentService) Create(ctx context.Context, actor *entities.User, postID, content string) (*entities.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainerrors.ErrCommentEmpty
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}

	comment := &entities.Comment{
		PostID:  post.ID,
		UserID:  actor.ID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = &entities.Author{ID: actor.ID, Name: actor.Name}

	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", post.ID)

	if s.publisher != nil {
		s.publisher.PublishComment(comment)
	}
	return comment, nil
}

// EnsurePost verifica se o post existe antes de abrir o feed ao vivo
func (s *CommentService) EnsurePost(ctx context.Context, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

// ListForPost lista os comentários visíveis de um post, do mais antigo ao mais novo
func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]*entities.Comment, error) {
	comments, err := s.comments.List(ctx, repositories.CommentFilters{PostID: postID})
	if err != nil {
		return nil, err
	}
	return comments, s.attachCommenters(ctx, comments)
}

// ListAll lista todos os comentários para moderação com o contexto do post
func (s *CommentService) ListAll(ctx context.Context) ([]*entities.Comment, error) {
	comments, err := s.comments.List(ctx, repositories.CommentFilters{
		IncludeSuspended: true,
		NewestFirst:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachCommenters(ctx, comments); err != nil {
		return nil, err
	}

	posts := make(map[string]*entities.PostContext)
	for _, comment := range comments {
		postCtx, ok := posts[comment.PostID]
		if !ok {
			post, err := s.posts.FindByID(ctx, comment.PostID)
			if err != nil {
				return nil, err
			}
			if post != nil {
				postCtx = &entities.PostContext{ID: post.ID, Title: post.Title, Slug: post.Slug}
			}
			posts[comment.PostID] = postCtx
		}
		comment.Post = postCtx
	}
	return comments, nil
}

// ToggleSuspension alterna a suspensão e retorna o novo estado
func (s *CommentService) ToggleSuspension(ctx context.Context, id string) (bool, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}

	suspended := comment.ToggleSuspension()
	if err := s.comments.Update(ctx, comment); err != nil {
		return false, err
	}

	s.logger.Info("comment suspension toggled", "comment_id", comment.ID, "suspended", suspended)
	return suspended, nil
}

// Delete remove um comentário
func (s *CommentService) Delete(ctx context.Context, id string) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "comment_id", comment.ID)
	return nil
}

func (s *CommentService) find(ctx context.Context, id string) (*entities.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s *CommentService) attachCommenters(ctx context.Context, comments []*entities.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(comments))
	seen := make(map[string]bool)
	for _, comment := range comments {
		if !seen[comment.UserID] {
			seen[comment.UserID] = true
			ids = append(ids, comment.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	for _, comment := range comments {
		if name, ok := names[comment.UserID]; ok {
			comment.Author = &entities.Author{ID: comment.UserID, Name: name}
		}
	}
	return nil
}
