package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// IdentityContextKey é a chave da identidade autenticada no contexto do Gin
const IdentityContextKey = "identity"

// Authenticator resolve um bearer token para a identidade do usuário
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*ports.Identity, error)
}

// AuthMiddleware protege rotas com bearer tokens
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Protect exige um bearer token válido e guarda a identidade no contexto
func (m *AuthMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, domainerrors.ErrNoToken)
			return
		}

		identity, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequirePermission exige que o role do usuário conceda a permissão; usar após Protect
func (m *AuthMiddleware) RequirePermission(permission entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			abortWithError(c, domainerrors.ErrNoToken)
			return
		}
		if !identity.Can(permission) {
			abortWithError(c, domainerrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// AdminOnly exige o role Admin; usar após Protect
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return m.RequirePermission(entities.PermissionUserManage)
}

// CurrentIdentity retorna a identidade guardada por Protect
func CurrentIdentity(c *gin.Context) (*ports.Identity, bool) {
	value, exists := c.Get(IdentityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*ports.Identity)
	return identity, ok && identity != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// abortWithError registra o erro para o error handler e interrompe a cadeia
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
