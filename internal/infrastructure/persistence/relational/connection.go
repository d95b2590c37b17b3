package relational

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
)

// NewDatabaseConnection abre a conexão com PostgreSQL ou SQLite e aplica as migrações
func NewDatabaseConnection(cfg *config.DatabaseConfig, log ports.Logger, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q is not relational", cfg.Driver)
	}

	logLevel := logger.Warn
	if verbose {
		logLevel = logger.Info
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite serializa escritas; uma única conexão evita "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MinConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database connected successfully",
		"driver", cfg.Driver,
		"host", cfg.Host,
		"database", cfg.DBName,
	)

	return db, nil
}

// NewSQLiteMemory abre um banco SQLite em memória compartilhada, já migrado (usado em testes)
func NewSQLiteMemory(name string) (*gorm.DB, error) {
	db, err := open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), logger.Silent)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate cria ou atualiza as tabelas
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&PostModel{},
		&ReactionModel{},
		&CommentModel{},
	)
}
