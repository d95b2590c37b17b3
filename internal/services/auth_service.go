package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

const (
	registrationCodeTTL = 24 * time.Hour
	resendCodeTTL       = 15 * time.Minute
	resetTokenTTL       = 10 * time.Minute

	// tempo máximo do envio assíncrono do email de boas-vindas
	asyncEmailTimeout = 30 * time.Second
)

// Session é o resultado de uma autenticação bem-sucedida
type Session struct {
	User  *entities.User
	Token string
}

// AuthService contém o fluxo de registro, verificação, login e recuperação de senha
type AuthService struct {
	users       repositories.UserRepository
	tokens      ports.TokenManager
	hasher      ports.PasswordHasher
	secrets     ports.SecretGenerator
	revocations ports.RevocationList
	mailer      ports.Mailer
	clientURL   string
	logger      ports.Logger

	now      func() time.Time
	inflight sync.WaitGroup
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	users repositories.UserRepository,
	tokens ports.TokenManager,
	hasher ports.PasswordHasher,
	secrets ports.SecretGenerator,
	revocations ports.RevocationList,
	mailer ports.Mailer,
	clientURL string,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		secrets:     secrets,
		revocations: revocations,
		mailer:      mailer,
		clientURL:   strings.TrimRight(clientURL, "/"),
		logger:      logger,
		now:         time.Now,
	}
}

// RegisterInput representa os dados de cadastro
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register cria um usuário não verificado e envia o código de verificação em segundo plano
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, domainerrors.ErrInvalidEmail
	}

	existing, err := s.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := entities.NewUser(email, strings.TrimSpace(input.Name), hash)
	if err := user.Validate(); err != nil {
		return nil, domainerrors.ErrValidation.Wrap(err)
	}

	code, err := s.secrets.VerificationCode()
	if err != nil {
		return nil, err
	}
	user.SetVerificationCode(code, s.now(), registrationCodeTTL)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email.String())

	message, err := s.verificationEmail(user, code, registrationCodeTTL)
	if err != nil {
		s.logger.Error("failed to render verification email", "user_id", user.ID, "error", err)
		return user, nil
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), asyncEmailTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, message); err != nil {
			s.logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
		}
	}()

	return user, nil
}

// Wait bloqueia até que os emails disparados em segundo plano terminem
func (s *AuthService) Wait() {
	s.inflight.Wait()
}

// VerifyEmail confirma o código enviado por email e abre uma sessão
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*Session, error) {
	user, err := s.users.FindByEmailAndCode(ctx, valueobjects.NormalizeEmail(email), strings.TrimSpace(code), s.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidVerification
	}

	user.MarkVerified()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return s.newSession(user)
}

// ResendVerification gera um novo código de 15 minutos e aguarda o envio do email
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = valueobjects.NormalizeEmail(email)
	if email == "" {
		return domainerrors.ErrInvalidEmail
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domainerrors.ErrUserNotFound
	}
	if user.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}

	code, err := s.secrets.VerificationCode()
	if err != nil {
		return err
	}
	user.SetVerificationCode(code, s.now(), resendCodeTTL)

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	message, err := s.verificationEmail(user, code, resendCodeTTL)
	if err != nil {
		return domainerrors.ErrEmailFailed.Wrap(err)
	}
	if err := s.mailer.Send(ctx, message); err != nil {
		s.logger.Error("failed to resend verification email", "user_id", user.ID, "error", err)
		return domainerrors.ErrEmailFailed.Wrap(err)
	}

	return nil
}

// Login valida as credenciais de um usuário verificado
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, valueobjects.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	return s.newSession(user)
}

// Logout revoga o token até sua expiração natural
func (s *AuthService) Logout(ctx context.Context, claims *ports.TokenClaims) error {
	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// ForgotPassword envia o link de redefinição quando o email existe.
// Emails desconhecidos não geram erro nem envio.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, valueobjects.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, hash, err := s.secrets.ResetToken()
	if err != nil {
		return err
	}
	user.SetPasswordReset(hash, s.now(), resetTokenTTL)

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	message, err := renderEmail(user.Email.String(), "Password Reset Request", resetPasswordEmailTemplate, resetPasswordEmailData{
		Name:     user.Name,
		Link:     s.clientURL + "/reset-password/" + token,
		ValidFor: humanDuration(resetTokenTTL),
	})
	if err == nil {
		err = s.mailer.Send(ctx, message)
	}
	if err != nil {
		s.logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)

		user.ClearPasswordReset()
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			s.logger.Error("failed to clear password reset token", "user_id", user.ID, "error", updateErr)
		}
		return domainerrors.ErrEmailFailed.Wrap(err)
	}

	return nil
}

// ResetPassword troca a senha usando o token do email e abre uma nova sessão
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (*Session, error) {
	user, err := s.users.FindByResetToken(ctx, s.secrets.HashToken(token), s.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.ClearPasswordReset()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("password reset", "user_id", user.ID)
	return s.newSession(user)
}

// Authenticate resolve o bearer token para a identidade do usuário
func (s *AuthService) Authenticate(ctx context.Context, token string) (*ports.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.Wrap(err)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domainerrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrTokenUser
	}

	return &ports.Identity{User: user, Claims: claims}, nil
}

func (s *AuthService) newSession(user *entities.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func (s *AuthService) verificationEmail(user *entities.User, code string, ttl time.Duration) (ports.Email, error) {
	return renderEmail(user.Email.String(), "Verify your email", verificationEmailTemplate, verificationEmailData{
		Name:     user.Name,
		Code:     code,
		ValidFor: humanDuration(ttl),
	})
}
