// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is used when LP_JWT_SECRET is not set. It is a
// documented development fallback and must never be used in production;
// Load emits a warning whenever it is in effect.
const DefaultJWTSecret = "dev-secret-change-in-production"

// MinJWTSecretLength is the minimum recommended length for the token
// signing secret.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"LP_DB_PATH" envDefault:"./data/leadpoint.db"`
	ServerHost string `env:"LP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"LP_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"LP_ENV" envDefault:"development"`
	LogLevel   string `env:"LP_LOG_LEVEL" envDefault:"info"`

	// Token signing secret. Falls back to DefaultJWTSecret when unset.
	JWTSecret string `env:"LP_JWT_SECRET"`

	// SMTP relay configuration. All three of host/user/password must be
	// set for the SMTP transport to be considered configured.
	SMTPHost     string `env:"LP_SMTP_HOST"`
	SMTPPort     int    `env:"LP_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"LP_SMTP_USER"`
	SMTPPassword string `env:"LP_SMTP_PASS"`

	// Resend transactional email API key (fallback transport).
	ResendAPIKey string `env:"LP_RESEND_API_KEY"`

	// Sender identity and notification routing.
	EmailFrom    string `env:"LP_EMAIL_FROM" envDefault:"Blue Soleil LLC <info@bluesoleilfl.com>"`
	EmailReplyTo string `env:"LP_EMAIL_REPLY_TO" envDefault:"info@bluesoleilfl.com"`
	AdminEmail   string `env:"LP_ADMIN_EMAIL"`

	// SkipEmailInDev suppresses outbound email in development builds.
	SkipEmailInDev bool `env:"LP_SKIP_EMAIL_IN_DEV" envDefault:"false"`

	// CORS allowed origins for the public form endpoints.
	CORSOrigins []string `env:"LP_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Seeding configuration
	SeedAdminEmail    string `env:"LP_SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"LP_SEED_ADMIN_PASSWORD" envDefault:"changeme"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SMTPConfigured returns true if the SMTP relay transport is fully configured.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// ResendConfigured returns true if the Resend API transport is configured.
func (c Config) ResendConfigured() bool {
	return c.ResendAPIKey != ""
}

// NotificationEmail returns the address that receives lead notifications.
// Falls back to the reply-to address when no dedicated admin address is set.
func (c Config) NotificationEmail() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.EmailReplyTo
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The weak fallback is kept for compatibility with existing
	// deployments, but it is never silent.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
		slog.Warn("LP_JWT_SECRET is not set, using insecure development default; " +
			"generate a secure secret with: openssl rand -base64 32")
	} else if len(cfg.JWTSecret) < MinJWTSecretLength {
		slog.Warn("LP_JWT_SECRET is shorter than the recommended minimum",
			"length", len(cfg.JWTSecret), "minimum", MinJWTSecretLength)
	}

	return cfg, nil
}
