package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
)

// T traduz a chave no idioma da requisição; sem o middleware de i18n devolve a própria chave.
// Uso: dto.T(c, "message.post_status_changed", map[string]interface{}{"Status": "Published"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	translator := translatorFrom(c)
	if translator == nil {
		return key
	}
	return translator.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma escolhido por middleware.DetectLanguage
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

func translatorFrom(c *gin.Context) *i18n.Service {
	value, _ := c.Get(middleware.I18nServiceContextKey)
	service, _ := value.(*i18n.Service)
	return service
}
