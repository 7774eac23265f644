package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "https://www.gtmovel.com", cfg.Server.BaseURL)
	assert.Equal(t, "https://api.resend.com/emails", cfg.Resend.APIURL)
	assert.Equal(t, "GT Móvel Website <noreply@gtmovel.com>", cfg.Mail.From)
	assert.Equal(t, "info@gtmovel.pt", cfg.Mail.To)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("MAIL_TO", "vendas@gtmovel.pt")
	t.Setenv("SUBMISSION_RECEIVED_TRIGGER_URL", "https://hooks.example.com/submission")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, "re_test_key", cfg.Resend.APIKey)
	assert.Equal(t, "vendas@gtmovel.pt", cfg.Mail.To)
	assert.Equal(t, "https://hooks.example.com/submission", cfg.EventTriggers.SubmissionReceivedTriggerURL)
}

func TestLoad_MissingAPIKeyIsNotFatal(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)
	assert.False(t, cfg.IsEmailConfigured())
}

func TestValidate_RequiredFields(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Resend: ResendConfig{APIURL: "https://api.resend.com/emails"},
			Mail: MailConfig{
				From: "GT Móvel Website <noreply@gtmovel.com>",
				To:   "info@gtmovel.pt",
			},
		}
	}

	assert.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT is required"},
		{"missing sender", func(c *Config) { c.Mail.From = "" }, "MAIL_FROM is required"},
		{"missing recipient", func(c *Config) { c.Mail.To = "" }, "MAIL_TO is required"},
		{"missing provider URL", func(c *Config) { c.Resend.APIURL = "" }, "RESEND_API_URL is required"},
		{"profiling without endpoint", func(c *Config) { c.Profiling.Enabled = true }, "O11Y_PROFILING_ENDPOINT is required when profiling is enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}

func TestIsEmailConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.IsEmailConfigured())

	cfg.Resend.APIKey = "re_live_key"
	assert.True(t, cfg.IsEmailConfigured())
}

func TestEnvironmentModes(t *testing.T) {
	dev := &Config{Server: ServerConfig{AppEnv: "development"}}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	debug := &Config{Server: ServerConfig{GinMode: "debug"}}
	assert.True(t, debug.IsDevelopment())

	prod := &Config{Server: ServerConfig{AppEnv: "production", GinMode: "release"}}
	assert.False(t, prod.IsDevelopment())
	assert.True(t, prod.IsProduction())
}
