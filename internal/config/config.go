package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ステータス遷移のルール
const (
	TransitionsOpen   = "open"
	TransitionsStrict = "strict"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `envconfig:"PORT" default:"8080"` // サーバーポート

	// DATABASE_URL があれば POSTGRES_* より優先
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"ninjashop"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"` // JWT署名シークレット
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"12h"`

	GoEnv    string `envconfig:"GO_ENV" default:"dev"` // dev/prod
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// 注文に変換したwishlist行を削除するか
	ConsumeOnOrder    bool          `envconfig:"CONSUME_ON_ORDER" default:"false"`
	OrderTimeout      time.Duration `envconfig:"ORDER_TIMEOUT" default:"5s"`
	DefaultStatusID   int64         `envconfig:"DEFAULT_STATUS_ID" default:"1"`
	StatusTransitions string        `envconfig:"STATUS_TRANSITIONS" default:"open"`
	// コミット後のイベント送信を待つ上限
	EventPublishTimeout time.Duration `envconfig:"EVENT_PUBLISH_TIMEOUT" default:"1s"`

	MediaDir       string `envconfig:"MEDIA_DIR" default:"./media"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// 空ならイベントは送らない
	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderTopic string   `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.OrderTimeout <= 0 {
		return fmt.Errorf("ORDER_TIMEOUT must be positive")
	}
	if c.EventPublishTimeout < 0 {
		return fmt.Errorf("EVENT_PUBLISH_TIMEOUT must not be negative")
	}
	if c.DefaultStatusID < 1 {
		return fmt.Errorf("DEFAULT_STATUS_ID must be >= 1")
	}
	switch c.StatusTransitions {
	case TransitionsOpen, TransitionsStrict:
	default:
		return fmt.Errorf("STATUS_TRANSITIONS must be %q or %q", TransitionsOpen, TransitionsStrict)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// DSN はgormに渡す接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     fmt.Sprintf("%s:%d", c.PostgresHost, c.PostgresPort),
		Path:     c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}
