package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
	pkgerrors "github.com/pkg/errors"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
)

var errRouteNotFound = domainerrors.New(domainerrors.KindNotFound, "error.route_not_found")

// bindError marca falhas de binding do corpo ou da query
type bindError struct {
	err error
}

func (e *bindError) Error() string { return "invalid request: " + e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

// ErrorRenderer converte erros em respostas RFC 7807 traduzidas
type ErrorRenderer struct {
	baseURL    string
	production bool
	logger     ports.Logger
}

// NewErrorRenderer cria um novo ErrorRenderer; fora de produção a resposta inclui o stack
func NewErrorRenderer(baseURL string, production bool, logger ports.Logger) *ErrorRenderer {
	return &ErrorRenderer{baseURL: baseURL, production: production, logger: logger}
}

// Middleware renderiza o último erro registrado com c.Error quando nada foi escrito
func (r *ErrorRenderer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		r.Render(c, last.Err)
	}
}

// Recovery converte panics na mesma resposta 500
func (r *ErrorRenderer) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		r.Render(c, pkgerrors.Errorf("panic: %v", recovered))
		c.Abort()
	})
}

// NoRoute responde 404 com o caminho pedido
func (r *ErrorRenderer) NoRoute(c *gin.Context) {
	r.Render(c, errRouteNotFound.WithParams(map[string]interface{}{"Path": c.Request.URL.Path}))
}

// Render escreve a resposta de erro
func (r *ErrorRenderer) Render(c *gin.Context, err error) {
	var (
		response dto.ErrorResponse
		status   int
	)

	var domainErr *domainerrors.DomainError
	var bindErr *bindError

	switch {
	case errors.As(err, &domainErr):
		status = statusForKind(domainErr.Kind)
		response = dto.NewErrorResponseI18n(c, r.baseURL, domainErr.Kind.ProblemType(), titleKey(domainErr.Kind), domainErr.Code, status, domainErr.Params)
		if domainErr.Kind == domainerrors.KindValidation && domainErr.Err != nil {
			response.Errors = []dto.ValidationError{{Message: domainErr.Err.Error()}}
		}

	case errors.As(err, &bindErr):
		status = http.StatusBadRequest
		if fields := dto.ValidationErrors(c, bindErr.err); fields != nil {
			response = dto.NewErrorResponseI18n(c, r.baseURL, domainerrors.ProblemTypeValidation, "error.validation.title", "error.validation.detail", status)
			response.Errors = fields
		} else {
			response = dto.NewErrorResponseI18n(c, r.baseURL, domainerrors.ProblemTypeBadRequest, "error.bad_request.title", "error.invalid_body", status)
		}

	default:
		status = http.StatusInternalServerError
		response = dto.NewErrorResponseI18n(c, r.baseURL, domainerrors.ProblemTypeInternal, "error.internal.title", "error.internal.detail", status)
	}

	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	if !r.production {
		response.Stack = fmt.Sprintf("%+v", err)
	}

	c.Header("Content-Type", problems.ProblemMediaType)
	c.JSON(status, response)
}

func statusForKind(kind domainerrors.Kind) int {
	switch kind {
	case domainerrors.KindValidation, domainerrors.KindBadRequest:
		return http.StatusBadRequest
	case domainerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case domainerrors.KindForbidden:
		return http.StatusForbidden
	case domainerrors.KindNotFound:
		return http.StatusNotFound
	case domainerrors.KindConflict:
		return http.StatusConflict
	case domainerrors.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func titleKey(kind domainerrors.Kind) string {
	switch kind {
	case domainerrors.KindValidation:
		return "error.validation.title"
	case domainerrors.KindBadRequest:
		return "error.bad_request.title"
	case domainerrors.KindUnauthorized:
		return "error.unauthorized.title"
	case domainerrors.KindForbidden:
		return "error.forbidden.title"
	case domainerrors.KindNotFound:
		return "error.not_found.title"
	case domainerrors.KindConflict:
		return "error.conflict.title"
	case domainerrors.KindTooManyRequests:
		return "error.too_many_requests.title"
	default:
		return "error.internal.title"
	}
}

// abort registra o erro para o ErrorRenderer
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON faz o binding e registra o erro quando falha
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abort(c, &bindError{err: err})
		return false
	}
	return true
}

// bindQuery faz o binding da query string e registra o erro quando falha
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		abort(c, &bindError{err: err})
		return false
	}
	return true
}
