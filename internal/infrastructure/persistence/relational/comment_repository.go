package relational

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	model := toCommentModel(comment)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err, "create comment")
	}

	comment.CreatedAt = fromNano(model.CreatedAt)
	comment.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	var model CommentModel

	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, "find comment by id")
	}

	return toCommentEntity(&model), nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	model := toCommentModel(comment)

	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		return translateError(err, "update comment")
	}

	comment.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	err := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&CommentModel{}).Error
	return translateError(err, "delete comment")
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	result := dbFrom(ctx, r.db).Where("post_id = ?", postID).Delete(&CommentModel{})
	if result.Error != nil {
		return 0, translateError(result.Error, "delete comments by post")
	}
	return result.RowsAffected, nil
}

func (r *CommentRepository) List(ctx context.Context, filters repositories.CommentFilters) ([]*entities.Comment, error) {
	var models []*CommentModel

	query := dbFrom(ctx, r.db).Model(&CommentModel{})

	if filters.PostID != "" {
		query = query.Where("post_id = ?", filters.PostID)
	}
	if !filters.IncludeSuspended {
		query = query.Where("is_suspended = ?", false)
	}

	order := "created_at ASC, id ASC"
	if filters.NewestFirst {
		order = "created_at DESC, id DESC"
	}

	if err := query.Order(order).Find(&models).Error; err != nil {
		return nil, translateError(err, "list comments")
	}

	comments := make([]*entities.Comment, 0, len(models))
	for _, model := range models {
		comments = append(comments, toCommentEntity(model))
	}
	return comments, nil
}

// Conversores
func toCommentModel(comment *entities.Comment) *CommentModel {
	return &CommentModel{
		ID:          comment.ID,
		PostID:      comment.PostID,
		UserID:      comment.UserID,
		Content:     comment.Content,
		IsSuspended: comment.IsSuspended,
		CreatedAt:   toNano(comment.CreatedAt),
		UpdatedAt:   toNano(comment.UpdatedAt),
	}
}

func toCommentEntity(model *CommentModel) *entities.Comment {
	return &entities.Comment{
		ID:          model.ID,
		PostID:      model.PostID,
		UserID:      model.UserID,
		Content:     model.Content,
		IsSuspended: model.IsSuspended,
		CreatedAt:   fromNano(model.CreatedAt),
		UpdatedAt:   fromNano(model.UpdatedAt),
	}
}
