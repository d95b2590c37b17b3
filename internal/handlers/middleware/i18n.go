package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware escolhe o idioma das mensagens de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{i18nService: i18nService}
}

// DetectLanguage grava o idioma no contexto e no header Content-Language.
// Ordem: ?lang= suportado, depois Accept-Language, depois o idioma padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if !m.i18nService.IsLanguageSupported(lang) {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

// parseAcceptLanguage retorna o primeiro idioma suportado por ordem de peso.
// Uma tag com região também casa com o locale base (en-US -> en), nunca o contrário.
func (m *I18nMiddleware) parseAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}

	for _, tag := range tags {
		if name := tag.String(); m.i18nService.IsLanguageSupported(name) {
			return name
		}
		if base, confidence := tag.Base(); confidence != language.No {
			if m.i18nService.IsLanguageSupported(base.String()) {
				return base.String()
			}
		}
	}

	return ""
}
