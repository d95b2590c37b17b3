package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs).
// Message repete o detalhe traduzido para os clientes que leem apenas esse campo.
type ErrorResponse struct {
	*problems.Problem
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// MessageResponse é a resposta padrão das operações sem corpo próprio
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(
	c *gin.Context,
	baseURL, problemType, titleKey, detailKey string,
	status int,
	params ...map[string]interface{},
) ErrorResponse {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	detail := T(c, detailKey, params...)

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		Problem: problem,
		Message:        detail,
	}
}

// NewMessageResponse traduz a mensagem de sucesso
func NewMessageResponse(c *gin.Context, key string, params ...map[string]interface{}) MessageResponse {
	return MessageResponse{Message: T(c, key, params...)}
}
