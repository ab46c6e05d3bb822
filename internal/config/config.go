package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string

	// Storage buckets
	AttachmentsBucket   string
	BrandAssetsBucket   string
	PaymentProofsBucket string

	// Database
	DatabaseURL string

	// Outbound mail
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string

	// Server
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string
}

func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),

		AttachmentsBucket:   getEnv("SUPABASE_ATTACHMENTS_BUCKET", "attachments"),
		BrandAssetsBucket:   getEnv("SUPABASE_BRAND_ASSETS_BUCKET", "brand-assets"),
		PaymentProofsBucket: getEnv("SUPABASE_PAYMENT_PROOFS_BUCKET", "payment-proofs"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_APP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SMTPUser
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fail-closed settings. SMTP credentials are deliberately
// not required here: the relay checks them per request so the rest of the
// portal keeps working without mail.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return nil
}

// MailConfigured reports whether the relay has credentials to send with.
func (c *Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
