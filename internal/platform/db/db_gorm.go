// Package db はgormによるデータベース接続（PostgreSQL / SQLite）を提供します。
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/platform/config"
)

// サポートするドライバー
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続設定です。Driver が空の場合はDBを使いません。
type Config struct {
	Driver         string        `validate:"omitempty,oneof=postgres sqlite"`
	DSN            string        `validate:"required_with=Driver"`
	ConnectTimeout time.Duration `validate:"gte=0"`
	AutoMigrate    bool
}

// Enabled はDBが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Driver != ""
}

// PostgresParams は DB_DSN を使わずに個別の値から接続文字列を組み立てる場合の設定です。
type PostgresParams struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// BuildDSN はPostgreSQL用のkey=value形式のDSN文字列を生成します。
func BuildDSN(p PostgresParams) string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.Name, port, sslmode)
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
// DB_DSN が空で postgres の場合は DB_HOST などから組み立てます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:         strings.ToLower(config.String("DB_DRIVER", "")),
		DSN:            config.String("DB_DSN", ""),
		ConnectTimeout: config.Duration("DB_CONNECT_TIMEOUT", 60*time.Second),
		AutoMigrate:    config.String("RUN_MIGRATIONS", "true") == "true",
	}
	if cfg.DSN == "" && cfg.Driver == DriverPostgres {
		cfg.DSN = BuildDSN(PostgresParams{
			User:     config.String("DB_USER", ""),
			Password: config.String("DB_PASSWORD", ""),
			Name:     config.String("DB_NAME", ""),
			Host:     config.String("DB_HOST", "localhost"),
			Port:     config.String("DB_PORT", "5432"),
			SSLMode:  config.String("DB_SSLMODE", "disable"),
		})
	}
	return cfg
}

// Opener はDSNからgorm接続を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバー名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry は timeout に達するまで retryInterval 間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempt, err)
		}
		slog.Warn("DB connect failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってDBへ接続し、必要ならマイグレーションを行います。
func Open(cfg Config) (*gorm.DB, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid db config: %w", err)
	}
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(cfg.DSN, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	slog.Info("DB connection successful", "driver", cfg.Driver)
	return db, nil
}

// Migrate はテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.PopularStock{})
}
