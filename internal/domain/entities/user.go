package entities

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

const (
	DefaultBio            = "A proud member of the Blog App community."
	DefaultProfilePicture = "/default-avatar.png"
	MinNameLength         = 2
	MaxBioLength          = 500
)

// User representa um usuário do sistema
type User struct {
	ID             string
	Email          valueobjects.Email
	Name           string
	PasswordHash   string
	Role           Role
	Bio            string
	ProfilePicture string
	Website        string
	Location       string
	GitHub         string

	IsVerified            bool
	VerificationCode      string
	VerificationExpiresAt *time.Time

	// Apenas o hash SHA-256 do token de reset é persistido
	ResetPasswordTokenHash string
	ResetPasswordExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser cria um usuário ainda não verificado com os defaults de perfil
func NewUser(email valueobjects.Email, name, passwordHash string) *User {
	return &User{
		Email:          email,
		Name:           name,
		PasswordHash:   passwordHash,
		Role:           RoleUser,
		Bio:            DefaultBio,
		ProfilePicture: DefaultProfilePicture,
	}
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// SetVerificationCode registra um novo código com validade ttl a partir de now
func (u *User) SetVerificationCode(code string, now time.Time, ttl time.Duration) {
	expires := now.Add(ttl)
	u.VerificationCode = code
	u.VerificationExpiresAt = &expires
}

// VerificationCodeMatches verifica código e validade
func (u *User) VerificationCodeMatches(code string, now time.Time) bool {
	if u.VerificationCode == "" || u.VerificationExpiresAt == nil {
		return false
	}
	return u.VerificationCode == code && now.Before(*u.VerificationExpiresAt)
}

// MarkVerified marca o email como verificado e descarta o código
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil
}

// SetPasswordReset registra o hash do token de reset
func (u *User) SetPasswordReset(tokenHash string, now time.Time, ttl time.Duration) {
	expires := now.Add(ttl)
	u.ResetPasswordTokenHash = tokenHash
	u.ResetPasswordExpiresAt = &expires
}

// ClearPasswordReset remove os campos de reset de senha
func (u *User) ClearPasswordReset() {
	u.ResetPasswordTokenHash = ""
	u.ResetPasswordExpiresAt = nil
}

// Summary retorna os dados públicos do autor
func (u *User) Summary() *Author {
	return &Author{
		ID:             u.ID,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if utf8.RuneCountInString(u.Name) < MinNameLength {
		return errors.New("name must be at least 2 characters")
	}

	if utf8.RuneCountInString(u.Bio) > MaxBioLength {
		return errors.New("bio must be at most 500 characters")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
