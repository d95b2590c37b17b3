package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/services"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// VerifyEmailRequest representa a confirmação do código enviado por email
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// EmailRequest é usado no reenvio de código e na recuperação de senha
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest representa a nova senha
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateProfileRequest aceita JSON ou multipart; campos ausentes são mantidos
type UpdateProfileRequest struct {
	Name     *string `json:"name" form:"name" binding:"omitempty,min=2,max=100"`
	Bio      *string `json:"bio" form:"bio" binding:"omitempty,max=500"`
	Website  *string `json:"website" form:"website" binding:"omitempty,max=200"`
	Location *string `json:"location" form:"location" binding:"omitempty,max=100"`
	GitHub   *string `json:"github" form:"github" binding:"omitempty,max=100"`
}

// ToInput converte a requisição para o input do serviço
func (r UpdateProfileRequest) ToInput() services.UpdateProfileInput {
	return services.UpdateProfileInput{
		Name:     r.Name,
		Bio:      r.Bio,
		Website:  r.Website,
		Location: r.Location,
		GitHub:   r.GitHub,
	}
}

// AdminUpdateUserRequest representa a edição administrativa de um usuário
type AdminUpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"`
}

// ToInput converte a requisição para o input do serviço
func (r AdminUpdateUserRequest) ToInput() services.AdminUpdateUserInput {
	input := services.AdminUpdateUserInput{Name: r.Name, Email: r.Email}
	if r.Role != nil {
		role := entities.Role(*r.Role)
		input.Role = &role
	}
	return input
}

// RegisterResponse é a resposta do cadastro; o código de verificação nunca é devolvido
type RegisterResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// UserResponse representa o perfil completo de um usuário
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	GitHub         string    `json:"github"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SessionResponse é o usuário autenticado com o bearer token
type SessionResponse struct {
	UserResponse
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// AuthorProfileResponse é o perfil público de um autor
type AuthorProfileResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	TotalPosts     int64     `json:"totalPosts"`
	TotalLikes     int       `json:"totalLikes"`
	TotalDislikes  int       `json:"totalDislikes"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email.String(),
		Role:           string(user.Role),
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Website:        user.Website,
		Location:       user.Location,
		GitHub:         user.GitHub,
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToSessionResponse converte uma sessão do serviço
func ToSessionResponse(session *services.Session, message string) SessionResponse {
	return SessionResponse{
		UserResponse: ToUserResponse(session.User),
		Token:        session.Token,
		Message:      message,
	}
}

// ToAuthorProfileResponse converte o perfil público do autor
func ToAuthorProfileResponse(profile *services.AuthorProfile) AuthorProfileResponse {
	return AuthorProfileResponse{
		ID:             profile.User.ID,
		Name:           profile.User.Name,
		Bio:            profile.User.Bio,
		ProfilePicture: profile.User.ProfilePicture,
		CreatedAt:      profile.User.CreatedAt,
		TotalPosts:     profile.TotalPosts,
		TotalLikes:     profile.TotalLikes,
		TotalDislikes:  profile.TotalDislikes,
	}
}
