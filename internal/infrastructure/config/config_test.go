package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("aplica defaults e lê variáveis de ambiente", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("CLIENT_URL", "https://blog.example.com/")
		t.Setenv("SMTP_USER", "mailer@example.com")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if cfg.Database.Driver != DriverSQLite {
			t.Errorf("esperava driver sqlite, obteve '%s'", cfg.Database.Driver)
		}
		if cfg.JWT.AccessExpiry != 720*time.Hour {
			t.Errorf("esperava expiração de 30 dias, obteve %s", cfg.JWT.AccessExpiry)
		}
		if cfg.Server.ClientURL != "https://blog.example.com" {
			t.Errorf("esperava CLIENT_URL sem barra final, obteve '%s'", cfg.Server.ClientURL)
		}
		if cfg.SMTP.From != "Blog App <mailer@example.com>" {
			t.Errorf("esperava remetente derivado do SMTP_USER, obteve '%s'", cfg.SMTP.From)
		}
		if cfg.Storage.MaxUploadMB != 5 {
			t.Errorf("esperava limite de upload 5MB, obteve %d", cfg.Storage.MaxUploadMB)
		}
	})

	t.Run("erro sem JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})

	t.Run("erro com driver desconhecido", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_DRIVER", "oracle")

		if _, err := Load(); err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})

	t.Run("erro com expiração inválida", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_ACCESS_EXPIRY", "30d")

		if _, err := Load(); err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})
}

func TestStorageConfig_ImageBaseURL(t *testing.T) {
	s := StorageConfig{Endpoint: "cdn.example.com", Bucket: "images", UseSSL: true}
	if got := s.ImageBaseURL(); got != "https://cdn.example.com/images" {
		t.Errorf("esperava URL https do bucket, obteve '%s'", got)
	}

	s.PublicURL = "https://img.example.com"
	if got := s.ImageBaseURL(); got != "https://img.example.com" {
		t.Errorf("esperava URL pública configurada, obteve '%s'", got)
	}
}
