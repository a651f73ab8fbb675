package gemini

import (
	"time"

	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/platform/config"
)

// DefaultModel はGemini APIのデフォルトモデルです。
const DefaultModel = "gemini-2.0-flash"

// Config はGeminiゲートウェイの設定です。
type Config struct {
	APIKey        string        `validate:"required"` // プライマリキー
	BackupAPIKeys []string      // 順序付きのバックアップキー
	Model         string        `validate:"required"`
	BaseURL       string        `validate:"omitempty,url"` // 空ならSDKの既定値
	Timeout       time.Duration `validate:"gte=0"`         // 0 は無制限
}

// LoadConfig は環境変数からGeminiの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:        config.String("GEMINI_API_KEY", ""),
		BackupAPIKeys: config.List("GEMINI_BACKUP_API_KEYS"),
		Model:         config.String("GEMINI_MODEL", DefaultModel),
		BaseURL:       config.String("GEMINI_BASE_URL", ""),
		Timeout:       config.Duration("GEMINI_TIMEOUT", 0),
	}
}

// Chain はプライマリ、バックアップの順に並んだキー列を返します。
func (c Config) Chain() entity.CredentialChain {
	keys := make([]string, 0, 1+len(c.BackupAPIKeys))
	keys = append(keys, c.APIKey)
	keys = append(keys, c.BackupAPIKeys...)
	return entity.NewCredentialChain(keys...)
}
