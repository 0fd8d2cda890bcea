package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, []string{"*"}, cfg.Web.AllowedOrigins)
	assert.Equal(t, "https://api.upbit.com", cfg.Upbit.BaseURL)
	assert.Equal(t, time.Hour, cfg.MarketsCacheTTL())
	assert.Equal(t, time.Hour, cfg.MarketsRefreshInterval())
	assert.Equal(t, 10, cfg.History.MaxItems)
	assert.Equal(t, 10, cfg.Stocks.SearchLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telegram.Enabled)
}

func TestDefault_PassesValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Hour, cfg.MarketsRefreshInterval())
	assert.False(t, cfg.DeepSeek.Enabled)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
web:
  port: 9090
  allowed_origins: ["https://clac.example"]
upbit:
  markets_cache_minutes: 5
  refresh_interval: 10m
history:
  db_path: /tmp/history.db
  max_items: 3
logging:
  level: debug
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, []string{"https://clac.example"}, cfg.Web.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.MarketsCacheTTL())
	assert.Equal(t, 10*time.Minute, cfg.MarketsRefreshInterval())
	assert.Equal(t, "/tmp/history.db", cfg.History.DBPath)
	assert.Equal(t, 3, cfg.History.MaxItems)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envTelegramToken, "from-env")
	t.Setenv(envDeepSeekAPIKey, "sk-env")

	path := writeConfig(t, `
telegram:
  enabled: true
  bot_token: from-file
  chat_id: 42
deepseek:
  enabled: true
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.Equal(t, "sk-env", cfg.DeepSeek.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad interval", "upbit:\n  refresh_interval: soon\n", "invalid upbit.refresh_interval"},
		{"telegram without token", "telegram:\n  enabled: true\n  chat_id: 1\n", "telegram.bot_token is required"},
		{"telegram without chat", "telegram:\n  enabled: true\n  bot_token: x\n", "telegram.chat_id is required"},
		{"deepseek without key", "deepseek:\n  enabled: true\n", "deepseek.api_key is required"},
		{"negative history", "history:\n  max_items: -1\n", "history.max_items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envTelegramToken, "")
			t.Setenv(envDeepSeekAPIKey, "")

			_, err := Load(writeConfig(t, tt.body), false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "web: [not, a, map"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
