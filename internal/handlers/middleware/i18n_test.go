package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
)

func setupTestI18n(t *testing.T) *i18n.Service {
	t.Helper()

	fsys := fstest.MapFS{
		"locales/en.json":    {Data: []byte(`{"message.logged_out": "Logged out successfully"}`)},
		"locales/pt-BR.json": {Data: []byte(`{"message.logged_out": "Logout realizado com sucesso"}`)},
		"locales/es.json":    {Data: []byte(`{"message.logged_out": "Sesión cerrada correctamente"}`)},
	}

	service, err := i18n.NewServiceFromFS(fsys, "locales", "en")
	if err != nil {
		t.Fatalf("failed to initialize i18n service: %v", err)
	}

	return service
}

func detectedLanguage(t *testing.T, m *I18nMiddleware, target, acceptLanguage string) string {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	c.Request = req

	m.DetectLanguage()(c)

	if _, exists := c.Get(I18nServiceContextKey); !exists {
		t.Fatal("serviço i18n não foi definido no contexto")
	}

	lang, exists := c.Get(LanguageContextKey)
	if !exists {
		t.Fatal("idioma não foi definido no contexto")
	}
	return lang.(string)
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       string
	}{
		{"query parameter", "/?lang=pt-BR", "", "pt-BR"},
		{"Accept-Language", "/", "es,en;q=0.9", "es"},
		{"idioma padrão", "/", "", "en"},
		{"query tem prioridade", "/?lang=pt-BR", "es", "pt-BR"},
		{"query inválida cai no header", "/?lang=fr", "es", "es"},
		{"nada suportado cai no padrão", "/?lang=fr", "de,it;q=0.5", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectedLanguage(t, m, tt.target, tt.acceptLanguage); got != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, got)
			}
		})
	}
}

func TestI18nMiddleware_parseAcceptLanguage(t *testing.T) {
	m := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name       string
		acceptLang string
		expected   string
	}{
		{"idioma único suportado", "pt-BR", "pt-BR"},
		{"primeiro suportado", "es,pt-BR;q=0.9,en;q=0.8", "es"},
		{"segundo suportado", "fr,pt-BR;q=0.9,en;q=0.8", "pt-BR"},
		{"região cai na base", "en-US,fr;q=0.5", "en"},
		{"nenhum suportado", "fr,de;q=0.9", ""},
		{"header vazio", "", ""},
		{"base sem região não casa com pt-BR", "pt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := m.parseAcceptLanguage(tt.acceptLang); result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}
		})
	}
}

func TestI18nMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewI18nMiddleware(setupTestI18n(t))

	router := gin.New()
	router.Use(m.DetectLanguage())
	router.POST("/logout", func(c *gin.Context) {
		lang := c.GetString(LanguageContextKey)
		service := c.MustGet(I18nServiceContextKey).(*i18n.Service)
		c.JSON(http.StatusOK, gin.H{"message": service.T(lang, "message.logged_out")})
	})

	t.Run("português via query", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout?lang=pt-BR", nil))

		expected := `{"message":"Logout realizado com sucesso"}`
		if w.Body.String() != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, w.Body.String())
		}
	})

	t.Run("espanhol via Accept-Language", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Accept-Language", "es")
		router.ServeHTTP(w, req)

		expected := `{"message":"Sesión cerrada correctamente"}`
		if w.Body.String() != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, w.Body.String())
		}
	})
}
