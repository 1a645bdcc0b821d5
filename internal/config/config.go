package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ストレージの種類
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // ローカルAPIのポート（8090）

	APIBaseURL    string        // バックエンドAPI（http://127.0.0.1:8000/api）
	APIAuthScheme string        // Authorizationのスキーム（Token / Bearer）
	APITimeout    time.Duration // 1リクエストのタイムアウト

	StorageDriver string // file / memory / postgres / redis
	StoragePath   string // fileのときの保存先
	StoragePrefix string // キーの接頭辞（redis / postgres）
	DatabaseURL   string // postgresのDSN（空ならPOSTGRES_*から組み立て）
	RedisURL      string // redis://host:6379/0

	InvoiceDir string // 請求書の出力先（空なら保存しない）

	LogLevel string // debug / info / warn / error
	GoEnv    string // dev/prod

	SandboxPort      string // サンドボックスAPIのポート
	SandboxJWTSecret string // サンドボックスのJWT署名シークレット
}

// Loadは環境変数
func Load() (Config, error) {
	timeout, err := durationOr("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8090"),

		APIBaseURL:    strings.TrimRight(getenv("API_BASE_URL", "http://127.0.0.1:8000/api"), "/"),
		APIAuthScheme: getenv("API_AUTH_SCHEME", "Token"),
		APITimeout:    timeout,

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageFile)),
		StoragePath:   getenv("STORAGE_PATH", "storefront.json"),
		StoragePrefix: getenv("STORAGE_PREFIX", "storefront:"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getenv("REDIS_URL", "redis://localhost:6379/0"),

		InvoiceDir: os.Getenv("INVOICE_DIR"),

		LogLevel: getenv("LOG_LEVEL", "info"),
		GoEnv:    getenv("GO_ENV", "dev"),

		SandboxPort:      getenv("SANDBOX_PORT", "8000"),
		SandboxJWTSecret: os.Getenv("SANDBOX_JWT_SECRET"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}
	if c.APIAuthScheme == "" {
		return fmt.Errorf("API_AUTH_SCHEME is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	switch c.StorageDriver {
	case StorageFile:
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH is required")
		}
	case StorageMemory, StoragePostgres:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of file, memory, postgres, redis")
	}
	return nil
}

// 本番なら true
func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// ":8090" 形式
func (c Config) Addr() string {
	return addr(c.Port)
}

func (c Config) SandboxAddr() string {
	return addr(c.SandboxPort)
}

func addr(port string) string {
	if port != "" && port[0] == ':' {
		return port
	}
	return ":" + port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// 秒の数値 "15" と "15s" のどちらも受け付ける
func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
