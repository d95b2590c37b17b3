package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	LatestPostsSize = 5

	// tentativas de sufixo antes de desistir do slug
	maxSlugAttempts = 50
	fallbackSlug    = "post"
)

// PostService contém o ciclo de vida dos posts e as reações
type PostService struct {
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	categories repositories.CategoryRepository
	users      repositories.UserRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	categories repositories.CategoryRepository,
	users repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *PostService {
	return &PostService{
		posts:      posts,
		comments:   comments,
		categories: categories,
		users:      users,
		uow:        uow,
		logger:     logger,
	}
}

// CreatePostInput representa os dados para criar um post
type CreatePostInput struct {
	Title           string
	Content         string
	Category        string
	FeaturedImage   string
	Tags            []string
	Status          entities.PostStatus
	MetaTitle       string
	MetaDescription string
}

// UpdatePostInput representa uma edição parcial: nil mantém o valor atual
type UpdatePostInput struct {
	Title           *string
	Content         *string
	Category        *string
	FeaturedImage   *string
	Tags            *[]string
	Status          *entities.PostStatus
	MetaTitle       *string
	MetaDescription *string
}

// ListPublishedInput contém os filtros da listagem pública
type ListPublishedInput struct {
	Keyword      string
	CategorySlug string
	Page         int
	Limit        int
}

// PostPage é uma página da listagem pública
type PostPage struct {
	Posts      []*entities.Post
	Page       int
	TotalPages int
	TotalPosts int64
}

// Create cria um post do autor com slug único
func (s *PostService) Create(ctx context.Context, actor *entities.User, input CreatePostInput) (*entities.Post, error) {
	post := &entities.Post{
		UserID:          actor.ID,
		Title:           strings.TrimSpace(input.Title),
		Content:         input.Content,
		Category:        strings.TrimSpace(input.Category),
		FeaturedImage:   strings.TrimSpace(input.FeaturedImage),
		Tags:            normalizeTags(input.Tags),
		Likes:           []string{},
		Dislikes:        []string{},
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
	}

	if post.Title == "" || strings.TrimSpace(post.Content) == "" || post.Category == "" || post.FeaturedImage == "" {
		return nil, domainerrors.ErrPostMissingFields
	}

	status, err := entities.InitialStatus(input.Status)
	if err != nil {
		return nil, err
	}
	post.Status = status

	if err := s.ensureCategory(ctx, post.Category); err != nil {
		return nil, err
	}

	if err := s.saveWithUniqueSlug(ctx, post, s.posts.Create); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "slug", post.Slug, "status", string(post.Status))
	return post, s.attachAuthors(ctx, post)
}

// ListPublished lista os posts publicados com busca por título e categoria
func (s *PostService) ListPublished(ctx context.Context, input ListPublishedInput) (*PostPage, error) {
	page, limit := normalizePage(input.Page, input.Limit)
	published := entities.PostStatusPublished

	filters := repositories.PostFilters{
		Status:   &published,
		Keyword:  input.Keyword,
		Page:     page,
		PageSize: limit,
	}

	if slug := strings.TrimSpace(input.CategorySlug); slug != "" {
		category, err := s.categories.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return &PostPage{Posts: []*entities.Post{}, Page: 1}, nil
		}
		filters.Category = category.Name
	}

	posts, total, err := s.posts.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, posts...); err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		TotalPosts: total,
	}, nil
}

// GetPublishedBySlug busca um post publicado pelo slug
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished() {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, s.attachAuthors(ctx, post)
}

// Latest retorna os posts publicados mais recentes, exceto o informado
func (s *PostService) Latest(ctx context.Context, excludeID string) ([]*entities.Post, error) {
	published := entities.PostStatusPublished
	posts, _, err := s.posts.List(ctx, repositories.PostFilters{
		Status:    &published,
		ExcludeID: excludeID,
		Page:      1,
		PageSize:  LatestPostsSize,
	})
	return posts, err
}

// ListByAuthor lista os posts publicados de um autor
func (s *PostService) ListByAuthor(ctx context.Context, userID string) ([]*entities.Post, error) {
	published := entities.PostStatusPublished
	return s.list(ctx, repositories.PostFilters{Status: &published, UserID: userID})
}

// ListMine lista todos os posts do usuário, em qualquer status
func (s *PostService) ListMine(ctx context.Context, actor *entities.User) ([]*entities.Post, error) {
	return s.list(ctx, repositories.PostFilters{UserID: actor.ID})
}

// ListAll lista todos os posts para moderação
func (s *PostService) ListAll(ctx context.Context) ([]*entities.Post, error) {
	return s.list(ctx, repositories.PostFilters{})
}

// GetForEdit busca um post em qualquer status para o autor ou um admin
func (s *PostService) GetForEdit(ctx context.Context, actor *entities.User, id string) (*entities.Post, error) {
	post, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.CanBeManagedBy(actor) {
		return nil, domainerrors.ErrPostViewForbidden
	}
	return post, s.attachAuthors(ctx, post)
}

// Update aplica a edição do autor respeitando o bloqueio de suspensão
func (s *PostService) Update(ctx context.Context, actor *entities.User, id string, input UpdatePostInput) (*entities.Post, error) {
	post, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(actor.ID) {
		return nil, domainerrors.ErrPostNotOwned
	}

	if input.Status != nil {
		if err := post.ChangeStatusByOwner(*input.Status); err != nil {
			return nil, err
		}
	}

	titleChanged := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerrors.ErrPostMissingFields
		}
		titleChanged = title != post.Title
		post.Title = title
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, domainerrors.ErrPostMissingFields
		}
		post.Content = *input.Content
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domainerrors.ErrPostMissingFields
		}
		if category != post.Category {
			if err := s.ensureCategory(ctx, category); err != nil {
				return nil, err
			}
		}
		post.Category = category
	}
	if input.FeaturedImage != nil {
		image := strings.TrimSpace(*input.FeaturedImage)
		if image == "" {
			return nil, domainerrors.ErrPostMissingFields
		}
		post.FeaturedImage = image
	}
	if input.Tags != nil {
		post.Tags = normalizeTags(*input.Tags)
	}
	if input.MetaTitle != nil {
		post.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		post.MetaDescription = *input.MetaDescription
	}

	if titleChanged {
		err = s.saveWithUniqueSlug(ctx, post, s.posts.Update)
	} else {
		err = s.posts.Update(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "post_id", post.ID, "slug", post.Slug, "status", string(post.Status))
	return post, s.attachAuthors(ctx, post)
}

// React alterna a reação do usuário e retorna os novos totais
func (s *PostService) React(ctx context.Context, actor *entities.User, postID, action string) (entities.ReactionCounts, error) {
	kind, err := entities.ParseReactionKind(action)
	if err != nil {
		return entities.ReactionCounts{}, err
	}

	post, err := s.find(ctx, postID)
	if err != nil {
		return entities.ReactionCounts{}, err
	}

	next := entities.NextReaction(post.ReactionOf(actor.ID), kind)
	return s.posts.SetReaction(ctx, post.ID, actor.ID, next)
}

// ToggleSuspension suspende ou restaura um post (apenas admin)
func (s *PostService) ToggleSuspension(ctx context.Context, id string) (entities.PostStatus, error) {
	post, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}

	status := post.ToggleSuspension()
	if err := s.posts.Update(ctx, post); err != nil {
		return "", err
	}

	s.logger.Info("post suspension toggled", "post_id", post.ID, "status", string(status))
	return status, nil
}

// DeleteOwned remove um post do próprio autor com seus comentários
func (s *PostService) DeleteOwned(ctx context.Context, actor *entities.User, id string) error {
	post, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsOwnedBy(actor.ID) {
		return domainerrors.ErrPostNotOwned
	}
	return s.delete(ctx, post)
}

// DeleteAsAdmin remove qualquer post com seus comentários
func (s *PostService) DeleteAsAdmin(ctx context.Context, id string) error {
	post, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.delete(ctx, post)
}

func (s *PostService) delete(ctx context.Context, post *entities.Post) error {
	var removed int64

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.comments.DeleteByPost(ctx, post.ID)
		if err != nil {
			return err
		}
		removed = n
		return s.posts.Delete(ctx, post.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted", "post_id", post.ID, "comments_removed", removed)
	return nil
}

func (s *PostService) find(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) list(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, error) {
	posts, _, err := s.posts.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return posts, s.attachAuthors(ctx, posts...)
}

func (s *PostService) ensureCategory(ctx context.Context, name string) error {
	category, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if category == nil {
		return domainerrors.ErrUnknownCategory.WithParams(map[string]interface{}{"Name": name})
	}
	return nil
}

// saveWithUniqueSlug escolhe o primeiro sufixo livre e repete quando o
// índice único rejeita o slug escolhido por uma escrita concorrente
func (s *PostService) saveWithUniqueSlug(
	ctx context.Context,
	post *entities.Post,
	save func(context.Context, *entities.Post) error,
) error {
	base := valueobjects.Slugify(post.Title)
	if base == "" {
		base = fallbackSlug
	}

	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := valueobjects.SlugWithSuffix(base, n)

		taken, err := s.posts.SlugExists(ctx, candidate, post.ID)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		post.Slug = candidate
		err = save(ctx, post)
		if errors.Is(err, repositories.ErrDuplicateKey) {
			s.logger.Warn("slug taken concurrently, retrying", "slug", candidate)
			continue
		}
		return err
	}

	return domainerrors.ErrSlugUnavailable
}

// attachAuthors preenche o resumo do autor com uma única busca
func (s *PostService) attachAuthors(ctx context.Context, posts ...*entities.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			ids = append(ids, post.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[string]*entities.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	for _, post := range posts {
		if user, ok := byID[post.UserID]; ok {
			post.Author = user.Summary()
		}
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func normalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			result = append(result, tag)
		}
	}
	return result
}
