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

// UserService contém a lógica de negócio para perfis e administração de usuários
type UserService struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	uploads *UploadService
	logger  ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	uploads *UploadService,
	logger ports.Logger,
) *UserService {
	return &UserService{
		users:   users,
		posts:   posts,
		uploads: uploads,
		logger:  logger,
	}
}

// UpdateProfileInput representa os dados editáveis do próprio perfil.
// Campos nil são mantidos; o role não é editável pelo usuário.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Website  *string
	Location *string
	GitHub   *string
	Image    *ImageFile
}

// AdminUpdateUserInput representa os dados que um admin pode alterar
type AdminUpdateUserInput struct {
	Name  *string
	Email *string
	Role  *entities.Role
}

// AuthorProfile é o perfil público de um autor com os totais dos seus posts
type AuthorProfile struct {
	User          *entities.User
	TotalPosts    int64
	TotalLikes    int
	TotalDislikes int
}

// GetProfile busca o perfil completo de um usuário
func (s *UserService) GetProfile(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile altera o perfil do próprio usuário, enviando a nova foto quando presente
func (s *UserService) UpdateProfile(ctx context.Context, actor *entities.User, input UpdateProfileInput) (*entities.User, error) {
	user, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Website != nil {
		user.Website = strings.TrimSpace(*input.Website)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.GitHub != nil {
		user.GitHub = strings.TrimSpace(*input.GitHub)
	}

	if err := user.Validate(); err != nil {
		return nil, domainerrors.ErrValidation.Wrap(err)
	}

	if input.Image != nil {
		url, err := s.uploads.UploadAvatar(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// GetAuthorProfile monta o perfil público com os totais de todos os posts do autor
func (s *UserService) GetAuthorProfile(ctx context.Context, id string) (*AuthorProfile, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, total, err := s.posts.List(ctx, repositories.PostFilters{UserID: id})
	if err != nil {
		return nil, err
	}

	profile := &AuthorProfile{User: user, TotalPosts: total}
	for _, post := range posts {
		counts := post.Counts()
		profile.TotalLikes += counts.Likes
		profile.TotalDislikes += counts.Dislikes
	}
	return profile, nil
}

// ListUsers lista usuários com filtros
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.users.List(ctx, filters)
}

// AdminUpdateUser altera nome, email ou role de qualquer usuário
func (s *UserService) AdminUpdateUser(ctx context.Context, id string, input AdminUpdateUserInput) (*entities.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Email != nil {
		email, err := valueobjects.NewEmail(*input.Email)
		if err != nil {
			return nil, domainerrors.ErrInvalidEmail
		}
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email.String())
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domainerrors.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := user.Validate(); err != nil {
		return nil, domainerrors.ErrValidation.Wrap(err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("user updated by admin", "user_id", user.ID, "role", string(user.Role))
	return user, nil
}

// DeleteUser remove um usuário; o admin não pode remover a própria conta
func (s *UserService) DeleteUser(ctx context.Context, actor *entities.User, id string) error {
	if actor.ID == id {
		return domainerrors.ErrCannotDeleteSelf
	}

	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", user.ID, "by", actor.ID)
	return nil
}
