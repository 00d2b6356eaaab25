package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "blog_session", cfg.Session.CookieName)
	assert.Equal(t, 336*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.Mail.Enabled)
	assert.Equal(t, "http://localhost:8000", cfg.App.BaseURL)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, 10*time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("SESSION_COOKIE_SECURE", "1")
	t.Setenv("BASE_URL", "https://blog.example.com/")
	t.Setenv("OUTBOX_POLL_INTERVAL", "30s")
	t.Setenv("MAIL_ENABLED", "false")
	t.Setenv("SMTP_HOST", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.App.Debug)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "https://blog.example.com", cfg.App.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Outbox.PollInterval)
	assert.False(t, cfg.Mail.Enabled)
}

func TestNewConfig_SecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte(testSecret+"\n"), 0o600))
	t.Setenv("SECRET_KEY_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, testSecret, cfg.App.SecretKey)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "short secret", env: map[string]string{"SECRET_KEY": "short"}},
		{name: "bad port", env: map[string]string{"SECRET_KEY": testSecret, "SERVER_PORT": "70000"}},
		{name: "bad duration", env: map[string]string{"SECRET_KEY": testSecret, "SESSION_TTL": "soon"}},
		{name: "bad bool", env: map[string]string{"SECRET_KEY": testSecret, "DEBUG": "maybe"}},
		{name: "relative base url", env: map[string]string{"SECRET_KEY": testSecret, "BASE_URL": "/blog"}},
		{name: "bad log level", env: map[string]string{"SECRET_KEY": testSecret, "LOG_LEVEL": "verbose"}},
		{name: "bad mail from", env: map[string]string{"SECRET_KEY": testSecret, "MAIL_FROM": "nobody"}},
		{name: "zero batch", env: map[string]string{"SECRET_KEY": testSecret, "OUTBOX_BATCH_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "blog", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@db:5433/blog?sslmode=require", d.DSN())
}
