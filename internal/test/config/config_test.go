package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"nexus-portal-backend/internal/config"
)

func TestValidate_RequiresSupabaseSettings(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:            "https://example.supabase.co",
		SupabasePublishableKey: "publishable-key",
		SupabaseJWTSecret:      "jwt-secret",
	}
	assert.NoError(t, cfg.Validate())

	cfg.SupabaseJWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestMailConfigured(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.MailConfigured())

	cfg.SMTPUser = "relay@nexushub.co"
	assert.False(t, cfg.MailConfigured(), "user alone is not enough")

	cfg.SMTPPassword = "app-password"
	assert.True(t, cfg.MailConfigured())
}
