package relational

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// CategoryRepository implementa repositories.CategoryRepository
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository cria um novo CategoryRepository
func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	model := toCategoryModel(category)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err, "create category")
	}

	category.CreatedAt = fromNano(model.CreatedAt)
	category.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entities.Category, error) {
	return r.first(ctx, "find category by id", "id = ?", id)
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	return r.first(ctx, "find category by slug", "slug = ?", slug)
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entities.Category, error) {
	return r.first(ctx, "find category by name", "name = ?", name)
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	model := toCategoryModel(category)

	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		return translateError(err, "update category")
	}

	category.UpdatedAt = fromNano(model.UpdatedAt)
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	err := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&CategoryModel{}).Error
	return translateError(err, "delete category")
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	var models []*CategoryModel

	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateError(err, "list categories")
	}

	categories := make([]*entities.Category, 0, len(models))
	for _, model := range models {
		categories = append(categories, toCategoryEntity(model))
	}
	return categories, nil
}

func (r *CategoryRepository) first(ctx context.Context, op string, query string, args ...interface{}) (*entities.Category, error) {
	var model CategoryModel

	if err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err, op)
	}

	return toCategoryEntity(&model), nil
}

func toCategoryModel(category *entities.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: toNano(category.CreatedAt),
		UpdatedAt: toNano(category.UpdatedAt),
	}
}

func toCategoryEntity(model *CategoryModel) *entities.Category {
	return &entities.Category{
		ID:        model.ID,
		Name:      model.Name,
		Slug:      model.Slug,
		CreatedAt: fromNano(model.CreatedAt),
		UpdatedAt: fromNano(model.UpdatedAt),
	}
}
