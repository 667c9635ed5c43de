package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // 接続URL（あればPOSTGRES_*より優先）
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     string // DBポート（5432）
	PostgresSSLMode  string // sslmode（disable）

	AdminJWTSecret    string // 管理トークンの署名シークレット
	AdminPasswordHash string // 管理パスワードのbcryptハッシュ

	// 低在庫通知のWebhook URL。未設定なら通知は黙ってスキップする。
	DiscordWebhookURL string

	// 商品登録時にalert_threshold未指定のときの既定値
	DefaultAlertThreshold int64
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "kiosk"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		AdminJWTSecret:    os.Getenv("ADMIN_JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),

		DefaultAlertThreshold: 3,
	}

	if v := os.Getenv("DEFAULT_ALERT_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("DEFAULT_ALERT_THRESHOLD must be number: %w", err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("DEFAULT_ALERT_THRESHOLD must be >= 0")
		}
		cfg.DefaultAlertThreshold = n
	}

	//必須チェック
	if cfg.AdminJWTSecret == "" {
		return Config{}, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
