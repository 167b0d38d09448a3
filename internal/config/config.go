package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret               string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer               string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		UseTLS   bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	// Forum holds the behavior of the discussion module itself: the ordered
	// status list (first entry is the default, last entry marks a discussion
	// closed), notification recipients, and the host user types allowed to
	// author forum content.
	Forum struct {
		DiscussionStatuses []string `yaml:"discussion_statuses" env:"FORUM_DISCUSSION_STATUSES"`
		AdminEmails        []string `yaml:"admin_emails" env:"FORUM_ADMIN_EMAILS"`
		MailerFrom         string   `yaml:"mailer_from" env:"FORUM_MAILER_FROM"`
		LatestLimit        int      `yaml:"latest_limit" env:"FORUM_LATEST_LIMIT"`
		UserTypes          []string `yaml:"user_types" env:"FORUM_USER_TYPES"`
	} `yaml:"forum"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML into Config structure
		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	err := loadFromEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "forumcore"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "forumcore"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// SMTP defaults
	config.SMTP.Port = 587

	// Forum defaults
	config.Forum.DiscussionStatuses = []string{"Open", "Resolved"}
	config.Forum.LatestLimit = 5
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid. Forum settings are
// checked here because a broken status list or mailer address must keep the
// process from starting at all.
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return apperrors.NewConfigurationError("database host is required")
	}

	if config.JWT.Secret == "" {
		return apperrors.NewConfigurationError("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("invalid JWT access token expiration: %v", err))
	}

	if len(config.Forum.DiscussionStatuses) == 0 {
		return apperrors.NewConfigurationError("forum.discussion_statuses must not be empty")
	}
	for _, status := range config.Forum.DiscussionStatuses {
		if strings.TrimSpace(status) == "" {
			return apperrors.NewConfigurationError("forum.discussion_statuses entries must not be blank")
		}
	}

	if config.Forum.MailerFrom == "" {
		return apperrors.NewConfigurationError("forum.mailer_from is required")
	}

	if config.Forum.LatestLimit <= 0 {
		return apperrors.NewConfigurationError("forum.latest_limit must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
