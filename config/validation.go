package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateSessionConfig(&config.Session); err != nil {
		return fmt.Errorf("session config validation failed: %w", err)
	}

	if err := validateMailConfig(&config.Mail); err != nil {
		return fmt.Errorf("mail config validation failed: %w", err)
	}

	if err := validateAppConfig(&config.App); err != nil {
		return fmt.Errorf("app config validation failed: %w", err)
	}

	if err := validateOutboxConfig(&config.Outbox); err != nil {
		return fmt.Errorf("outbox config validation failed: %w", err)
	}

	if err := validateRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ReadTimeout: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got WriteTimeout: %v", config.WriteTimeout)
	}

	if config.IdleTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got IdleTimeout: %v", config.IdleTimeout)
	}

	return nil
}

func validateDatabaseConfig(config *DatabaseConfig) error {
	if config.Host == "" || config.Name == "" || config.User == "" {
		return fmt.Errorf("host, name and user are required")
	}

	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.MaxConns < 1 {
		return fmt.Errorf("max connections must be at least 1, got %d", config.MaxConns)
	}

	if config.MinConns < 0 || config.MinConns > config.MaxConns {
		return fmt.Errorf("min connections must be between 0 and %d, got %d", config.MaxConns, config.MinConns)
	}

	if config.ConnectionTimeout <= 0 {
		return fmt.Errorf("connection timeout must be positive, got %v", config.ConnectionTimeout)
	}

	return nil
}

func validateSessionConfig(config *SessionConfig) error {
	if config.CookieName == "" {
		return fmt.Errorf("cookie name is required")
	}

	if config.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", config.TTL)
	}

	return nil
}

func validateMailConfig(config *MailConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required when mail is enabled")
	}

	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535, got %d", config.Port)
	}

	if !strings.Contains(config.From, "@") {
		return fmt.Errorf("MAIL_FROM must be an e-mail address, got %q", config.From)
	}

	switch config.TLSPolicy {
	case "mandatory", "opportunistic", "none":
	default:
		return fmt.Errorf("invalid SMTP TLS policy: %s", config.TLSPolicy)
	}

	return nil
}

func validateAppConfig(config *AppConfig) error {
	if len(config.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters")
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", config.BaseURL)
	}

	return nil
}

func validateOutboxConfig(config *OutboxConfig) error {
	if config.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", config.PollInterval)
	}

	if config.BatchSize < 1 || config.BatchSize > 1000 {
		return fmt.Errorf("batch size must be between 1 and 1000, got %d", config.BatchSize)
	}

	if config.Retention <= 0 {
		return fmt.Errorf("retention must be positive, got %v", config.Retention)
	}

	if config.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive, got %v", config.JobTimeout)
	}

	return nil
}

func validateRateLimitConfig(config *RateLimitConfig) error {
	if config.LoginPerMinute < 1 {
		return fmt.Errorf("login rate must be at least 1 per minute, got %d", config.LoginPerMinute)
	}

	if config.LoginBurst < 1 {
		return fmt.Errorf("login burst must be at least 1, got %d", config.LoginBurst)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if config.Level == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level: %s", config.Level)
	}

	validFormats := []string{"json", "text"}
	isValidFormat := false
	for _, format := range validFormats {
		if config.Format == format {
			isValidFormat = true
			break
		}
	}
	if !isValidFormat {
		return fmt.Errorf("invalid log format: %s", config.Format)
	}

	return nil
}
