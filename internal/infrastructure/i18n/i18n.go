package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// DefaultLanguage é o fallback quando a requisição não indica um idioma suportado
const DefaultLanguage = "en"

//go:embed locales/*.json
var embeddedLocales embed.FS

// Service gerencia traduções e internacionalização
type Service struct {
	mu              sync.RWMutex
	translations    map[string]map[string]string // [language][key]message
	templates       map[string]*template.Template
	defaultLanguage string
}

// NewDefaultService carrega os locales embutidos no binário (en, pt-BR, es)
func NewDefaultService() (*Service, error) {
	return NewServiceFromFS(embeddedLocales, "locales", DefaultLanguage)
}

// NewService carrega os arquivos JSON de um diretório do disco
func NewService(localesDir, defaultLang string) (*Service, error) {
	return NewServiceFromFS(os.DirFS(localesDir), ".", defaultLang)
}

// NewServiceFromFS carrega todos os arquivos <lang>.json de dir em fsys
func NewServiceFromFS(fsys fs.FS, dir, defaultLang string) (*Service, error) {
	s := &Service{
		translations:    make(map[string]map[string]string),
		templates:       make(map[string]*template.Template),
		defaultLanguage: defaultLang,
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", dir)
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}

		s.translations[lang] = translations
	}

	if _, ok := s.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

// T traduz uma chave para o idioma especificado.
// Parâmetros são interpolados como templates Go ({{.Name}}, {{.Count}}).
// Chaves ausentes caem no idioma padrão e, por fim, na própria chave.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	message, cacheKey := s.lookup(lang, key)
	if message == "" {
		return key
	}

	if len(params) == 0 || !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := s.template(cacheKey, message)
	if err != nil {
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return message
	}

	return buf.String()
}

func (s *Service) lookup(lang, key string) (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if msg, ok := s.translations[lang][key]; ok {
		return msg, lang + ":" + key
	}
	if msg, ok := s.translations[s.defaultLanguage][key]; ok {
		return msg, s.defaultLanguage + ":" + key
	}
	return "", ""
}

// template compila a mensagem uma única vez por idioma e chave
func (s *Service) template(cacheKey, message string) (*template.Template, error) {
	s.mu.RLock()
	tmpl, ok := s.templates[cacheKey]
	s.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := template.New(cacheKey).Option("missingkey=zero").Parse(message)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.templates[cacheKey] = tmpl
	s.mu.Unlock()

	return tmpl, nil
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.translations))
	for lang := range s.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsLanguageSupported verifica se um idioma é suportado
func (s *Service) IsLanguageSupported(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.translations[lang]
	return ok
}
