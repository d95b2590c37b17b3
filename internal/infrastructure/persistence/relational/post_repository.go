package relational

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository.
// Reações ficam em post_reactions, uma linha por (post, usuário).
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	model := toPostModel(post)

	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "create post")
	}

	post.CreatedAt = fromNano(model.CreatedAt)
	post.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	return r.first(ctx, "find post by id", "id = ?", id)
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	return r.first(ctx, "find post by slug", "slug = ?", slug)
}

func (r *PostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64

	query := dbFrom(ctx, r.db).Model(&PostModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, translateError(err, "check slug")
	}
	return count > 0, nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	model := toPostModel(post)

	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, "update post")
	}

	post.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	db := dbFrom(ctx, r.db)

	if err := db.Where("post_id = ?", id).Delete(&ReactionModel{}).Error; err != nil {
		return translateError(err, "delete post reactions")
	}

	err := db.Where("id = ?", id).Delete(&PostModel{}).Error
	return translateError(err, "delete post")
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	var models []*PostModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&PostModel{})

	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.ExcludeID != "" {
		query = query.Where("id <> ?", filters.ExcludeID)
	}
	if keyword := strings.TrimSpace(filters.Keyword); keyword != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(keyword))+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count posts")
	}

	err := paginate(query, filters.Page, filters.PageSize).
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, 0, translateError(err, "list posts")
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, toPostEntity(model))
	}

	return posts, total, nil
}

func (r *PostRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64

	err := dbFrom(ctx, r.db).Model(&PostModel{}).Where("category = ?", category).Count(&count).Error
	if err != nil {
		return 0, translateError(err, "count posts by category")
	}
	return count, nil
}

func (r *PostRepository) RenameCategory(ctx context.Context, oldName, newName string) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&PostModel{}).Where("category = ?", oldName).Update("category", newName)
	if result.Error != nil {
		return 0, translateError(result.Error, "rename post category")
	}
	return result.RowsAffected, nil
}

func (r *PostRepository) SetReaction(ctx context.Context, postID, userID string, kind *entities.ReactionKind) (entities.ReactionCounts, error) {
	db := dbFrom(ctx, r.db)

	if kind == nil {
		err := db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&ReactionModel{}).Error
		if err != nil {
			return entities.ReactionCounts{}, translateError(err, "remove reaction")
		}
	} else {
		// Upsert sobre a chave (post_id, user_id): like e dislike são mutuamente exclusivos
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind"}),
		}).Create(&ReactionModel{PostID: postID, UserID: userID, Kind: string(*kind)}).Error
		if err != nil {
			return entities.ReactionCounts{}, translateError(err, "set reaction")
		}
	}

	return r.countReactions(db, postID)
}

func (r *PostRepository) countReactions(db *gorm.DB, postID string) (entities.ReactionCounts, error) {
	var rows []struct {
		Kind  string
		Total int
	}

	err := db.Model(&ReactionModel{}).
		Select("kind, COUNT(*) AS total").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return entities.ReactionCounts{}, translateError(err, "count reactions")
	}

	var counts entities.ReactionCounts
	for _, row := range rows {
		switch entities.ReactionKind(row.Kind) {
		case entities.ReactionLike:
			counts.Likes = row.Total
		case entities.ReactionDislike:
			counts.Dislikes = row.Total
		}
	}
	return counts, nil
}

func (r *PostRepository) first(ctx context.Context, op string, query string, args ...interface{}) (*entities.Post, error) {
	var model PostModel

	err := dbFrom(ctx, r.db).
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(query, args...).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}

	return toPostEntity(&model), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Conversores
func toPostModel(post *entities.Post) *PostModel {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return &PostModel{
		ID:              post.ID,
		UserID:          post.UserID,
		Title:           post.Title,
		Slug:            post.Slug,
		Content:         post.Content,
		Category:        post.Category,
		Tags:            tags,
		FeaturedImage:   post.FeaturedImage,
		Status:          string(post.Status),
		SuspendedFrom:   string(post.SuspendedFrom),
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		CreatedAt:       toNano(post.CreatedAt),
		UpdatedAt:       toNano(post.UpdatedAt),
	}
}

func toPostEntity(model *PostModel) *entities.Post {
	post := &entities.Post{
		ID:              model.ID,
		UserID:          model.UserID,
		Title:           model.Title,
		Slug:            model.Slug,
		Content:         model.Content,
		Category:        model.Category,
		Tags:            model.Tags,
		Likes:           []string{},
		Dislikes:        []string{},
		FeaturedImage:   model.FeaturedImage,
		Status:          entities.PostStatus(model.Status),
		SuspendedFrom:   entities.PostStatus(model.SuspendedFrom),
		MetaTitle:       model.MetaTitle,
		MetaDescription: model.MetaDescription,
		CreatedAt:       fromNano(model.CreatedAt),
		UpdatedAt:       fromNano(model.UpdatedAt),
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	for _, reaction := range model.Reactions {
		switch entities.ReactionKind(reaction.Kind) {
		case entities.ReactionLike:
			post.Likes = append(post.Likes, reaction.UserID)
		case entities.ReactionDislike:
			post.Dislikes = append(post.Dislikes, reaction.UserID)
		}
	}

	return post
}
