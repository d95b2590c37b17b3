package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Drivers de banco suportados
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Resend    ResendConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Port      string
	Host      string
	BaseURL   string // URL base da API para construir URIs RFC 7807
	ClientURL string // URL do frontend usada nos links de email
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int

	SQLitePath string

	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool // exige replica set
}

type RedisConfig struct {
	URL string // vazio = armazenamento em memória
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ResendConfig struct {
	APIKey string
	From   string
}

type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	PublicURL   string
	MaxUploadMB int64
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type JobsConfig struct {
	CleanupSchedule string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "blog")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("SQLITE_PATH", "blog.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "blog")
	v.SetDefault("MONGO_TRANSACTIONS", false)

	v.SetDefault("JWT_ACCESS_EXPIRY", "720h")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("RESEND_FROM", "Blog App <onboarding@resend.dev>")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_BUCKET", "blog-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("UPLOAD_MAX_MB", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("CLEANUP_SCHEDULE", "@hourly")
}

// Load carrega as configurações de variáveis de ambiente; o arquivo .env é opcional
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	expiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}

	smtpUser := v.GetString("SMTP_USER")
	mailFrom := v.GetString("MAIL_FROM")
	if mailFrom == "" && smtpUser != "" {
		mailFrom = fmt.Sprintf("Blog App <%s>", smtpUser)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:      v.GetString("PORT"),
			Host:      v.GetString("HOST"),
			BaseURL:   v.GetString("API_BASE_URL"),
			ClientURL: strings.TrimRight(v.GetString("CLIENT_URL"), "/"),
		},
		Database: DatabaseConfig{
			Driver:            strings.ToLower(v.GetString("DB_DRIVER")),
			Host:              v.GetString("DB_HOST"),
			Port:              v.GetInt("DB_PORT"),
			User:              v.GetString("DB_USER"),
			Password:          v.GetString("DB_PASS"),
			DBName:            v.GetString("DB_NAME"),
			SSLMode:           v.GetString("DB_SSL_MODE"),
			MaxConns:          v.GetInt("DB_MAX_CONNS"),
			MinConns:          v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime:       v.GetInt("DB_MAX_IDLE_TIME"),
			SQLitePath:        v.GetString("SQLITE_PATH"),
			MongoURI:          v.GetString("MONGO_URI"),
			MongoDatabase:     v.GetString("MONGO_DB"),
			MongoTransactions: v.GetBool("MONGO_TRANSACTIONS"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: expiry,
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     smtpUser,
			Password: v.GetString("SMTP_PASS"),
			From:     mailFrom,
		},
		Resend: ResendConfig{
			APIKey: v.GetString("RESEND_API_KEY"),
			From:   v.GetString("RESEND_FROM"),
		},
		Storage: StorageConfig{
			Endpoint:    v.GetString("MINIO_ENDPOINT"),
			AccessKey:   v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:   v.GetString("MINIO_SECRET_KEY"),
			Bucket:      v.GetString("MINIO_BUCKET"),
			UseSSL:      v.GetBool("MINIO_USE_SSL"),
			PublicURL:   strings.TrimRight(v.GetString("MINIO_PUBLIC_URL"), "/"),
			MaxUploadMB: v.GetInt64("UPLOAD_MAX_MB"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Jobs: JobsConfig{
			CleanupSchedule: v.GetString("CLEANUP_SCHEDULE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejeita combinações de configuração que impedem a inicialização
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Storage.MaxUploadMB <= 0 {
		return errors.New("UPLOAD_MAX_MB must be positive")
	}

	return nil
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// ImageBaseURL retorna a URL pública sob a qual os objetos do bucket são servidos
func (s *StorageConfig) ImageBaseURL() string {
	if s.PublicURL != "" {
		return s.PublicURL
	}
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, s.Endpoint, s.Bucket)
}
