package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// CategoryService contém a administração de categorias
type CategoryService struct {
	categories repositories.CategoryRepository
	posts      repositories.PostRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewCategoryService cria um novo CategoryService
func NewCategoryService(
	categories repositories.CategoryRepository,
	posts repositories.PostRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		posts:      posts,
		uow:        uow,
		logger:     logger,
	}
}

// List lista as categorias ordenadas por nome
func (s *CategoryService) List(ctx context.Context) ([]*entities.Category, error) {
	return s.categories.List(ctx)
}

// Create cria uma categoria com nome único
func (s *CategoryService) Create(ctx context.Context, name string) (*entities.Category, error) {
	category := entities.NewCategory(name)
	if category.Name == "" || category.Slug == "" {
		return nil, domainerrors.ErrCategoryNameMissing
	}

	existing, err := s.categories.FindByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrCategoryExists
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, domainerrors.ErrCategoryExists
		}
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

// Update renomeia a categoria e propaga o novo nome para os posts
func (s *CategoryService) Update(ctx context.Context, id, name string) (*entities.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domainerrors.ErrCategoryNameMissing
	}

	var category *entities.Category
	var moved int64

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.find(ctx, id)
		if err != nil {
			return err
		}

		oldName := category.Name
		category.Rename(name)
		if category.Slug == "" {
			return domainerrors.ErrCategoryNameMissing
		}
		if category.Name == oldName {
			return nil
		}

		if err := s.categories.Update(ctx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return domainerrors.ErrCategoryExists
			}
			return err
		}

		moved, err = s.posts.RenameCategory(ctx, oldName, category.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "category_id", category.ID, "name", category.Name, "posts_moved", moved)
	return category, nil
}

// Delete remove a categoria quando nenhum post a referencia
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	var name string

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		category, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		name = category.Name

		count, err := s.posts.CountByCategory(ctx, category.Name)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrCategoryInUse.WithParams(map[string]interface{}{
				"Name":  category.Name,
				"Count": count,
			})
		}

		return s.categories.Delete(ctx, category.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "name", name)
	return nil
}

func (s *CategoryService) find(ctx context.Context, id string) (*entities.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domainerrors.ErrCategoryNotFound
	}
	return category, nil
}
