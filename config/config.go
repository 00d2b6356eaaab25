package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	Session   SessionConfig   `json:"session"`
	Mail      MailConfig      `json:"mail"`
	App       AppConfig       `json:"app"`
	Outbox    OutboxConfig    `json:"outbox"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Logging   LoggingConfig   `json:"logging"`
}

type ServerConfig struct {
	Port         int           `json:"port" env:"SERVER_PORT" default:"8000"`
	ReadTimeout  time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	BodyLimit    string        `json:"body_limit" env:"SERVER_BODY_LIMIT" default:"2M"`
}

type DatabaseConfig struct {
	Host              string        `json:"host" env:"DB_HOST" default:"localhost"`
	Port              int           `json:"port" env:"DB_PORT" default:"5432"`
	User              string        `json:"user" env:"DB_USER" default:"blog"`
	Password          string        `json:"-" env:"DB_PASSWORD"`
	Name              string        `json:"name" env:"DB_NAME" default:"blog"`
	SSLMode           string        `json:"ssl_mode" env:"DB_SSL_MODE" default:"disable"`
	MaxConns          int           `json:"max_conns" env:"DB_MAX_CONNS" default:"25"`
	MinConns          int           `json:"min_conns" env:"DB_MIN_CONNS" default:"2"`
	ConnectionTimeout time.Duration `json:"connection_timeout" env:"DB_CONNECTION_TIMEOUT" default:"30s"`
}

// DSN returns a postgres:// URL understood by both pgx and lib/pq.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

type RedisConfig struct {
	URL string `json:"-" env:"REDIS_URL" default:"redis://localhost:6379/0"`
}

type SessionConfig struct {
	CookieName   string        `json:"cookie_name" env:"SESSION_COOKIE_NAME" default:"blog_session"`
	TTL          time.Duration `json:"ttl" env:"SESSION_TTL" default:"336h"`
	CookieSecure bool          `json:"cookie_secure" env:"SESSION_COOKIE_SECURE" default:"false"`
}

type MailConfig struct {
	Enabled  bool   `json:"enabled" env:"MAIL_ENABLED" default:"true"`
	Host     string `json:"host" env:"SMTP_HOST" default:"localhost"`
	Port     int    `json:"port" env:"SMTP_PORT" default:"587"`
	Username string `json:"username" env:"SMTP_USERNAME"`
	Password string `json:"-" env:"SMTP_PASSWORD"`
	From     string `json:"from" env:"MAIL_FROM" default:"noreply@localhost"`
	// TLSPolicy is one of mandatory, opportunistic or none.
	TLSPolicy string        `json:"tls_policy" env:"SMTP_TLS_POLICY" default:"opportunistic"`
	Timeout   time.Duration `json:"timeout" env:"SMTP_TIMEOUT" default:"15s"`
}

type AppConfig struct {
	BaseURL   string `json:"base_url" env:"BASE_URL" default:"http://localhost:8000"`
	SecretKey string `json:"-" env:"SECRET_KEY"`
	Debug     bool   `json:"debug" env:"DEBUG" default:"false"`
}

type OutboxConfig struct {
	PollInterval time.Duration `json:"poll_interval" env:"OUTBOX_POLL_INTERVAL" default:"10s"`
	BatchSize    int           `json:"batch_size" env:"OUTBOX_BATCH_SIZE" default:"50"`
	Retention    time.Duration `json:"retention" env:"OUTBOX_RETENTION" default:"168h"`
	JobTimeout   time.Duration `json:"job_timeout" env:"OUTBOX_JOB_TIMEOUT" default:"2m"`
}

type RateLimitConfig struct {
	LoginPerMinute int `json:"login_per_minute" env:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst     int `json:"login_burst" env:"LOGIN_BURST" default:"5"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json"`
}

// NewConfig creates a new configuration by loading a .env file when present,
// then environment variables with fallback to default values.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	config.App.BaseURL = strings.TrimRight(config.App.BaseURL, "/")

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}
