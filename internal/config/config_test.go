package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected *Config
		wantErr  bool
	}{
		{
			name: "valid_json_config",
			content: `{
  "region": "Київська область",
  "alert_on": "/usr/share/sounds/alert_on.mp3",
  "alert_off": "/usr/share/sounds/alert_off.mp3",
  "data_url": "https://alerts.example.com/api/states",
  "update_interval": 10
}`,
			expected: &Config{
				Region:         "Київська область",
				AlertOnSound:   "/usr/share/sounds/alert_on.mp3",
				AlertOffSound:  "/usr/share/sounds/alert_off.mp3",
				DataURL:        "https://alerts.example.com/api/states",
				UpdateInterval: 10,
				Interval:       10 * time.Second,
				Player:         "mpg123",
				PlayerArgs:     []string{"-q"},
				Templates: TemplateConfig{
					FiredTitle:      DefaultFiredTitle,
					FiredMessage:    DefaultFiredMessage,
					ResolvedTitle:   DefaultResolvedTitle,
					ResolvedMessage: DefaultResolvedMessage,
				},
			},
		},
		{
			name: "yaml_with_optional_fields",
			content: `
region: "Lviv"
alert_on: "on.mp3"
alert_off: "off.mp3"
data_url: "http://localhost:8080/states"
update_interval: 5
request_timeout: 3
player: "paplay"
player_args: []
templates:
  fired_title: "ALERT"
  fired_message: "Air raid alert in {{.Region}}"
  resolved_title: "ALL CLEAR"
  resolved_message: "All clear in {{.Region}}"
notification_channels:
  - name: "console"
    type: "stdout"
`,
			expected: &Config{
				Region:                "Lviv",
				AlertOnSound:          "on.mp3",
				AlertOffSound:         "off.mp3",
				DataURL:               "http://localhost:8080/states",
				UpdateInterval:        5,
				Interval:              5 * time.Second,
				RequestTimeoutSeconds: 3,
				RequestTimeout:        3 * time.Second,
				Player:                "paplay",
				PlayerArgs:            []string{},
				Templates: TemplateConfig{
					FiredTitle:      "ALERT",
					FiredMessage:    "Air raid alert in {{.Region}}",
					ResolvedTitle:   "ALL CLEAR",
					ResolvedMessage: "All clear in {{.Region}}",
				},
				NotificationChannels: []NotificationChannelConfig{
					{Name: "console", Type: "stdout"},
				},
			},
		},
		{
			name:    "default_interval",
			content: `{"region": "Odesa", "data_url": "http://x", "update_interval": 0}`,
			expected: &Config{
				Region:         "Odesa",
				DataURL:        "http://x",
				UpdateInterval: 30,
				Interval:       30 * time.Second,
				Player:         "mpg123",
				PlayerArgs:     []string{"-q"},
				Templates: TemplateConfig{
					FiredTitle:      DefaultFiredTitle,
					FiredMessage:    DefaultFiredMessage,
					ResolvedTitle:   DefaultResolvedTitle,
					ResolvedMessage: DefaultResolvedMessage,
				},
			},
		},
		{
			name:    "valid_json_escaped_slash",
			content: `{"region": "Kyiv", "data_url": "https:\/\/alerts.example.com\/api\/states"}`,
			expected: &Config{
				Region:         "Kyiv",
				DataURL:        "https://alerts.example.com/api/states",
				UpdateInterval: 30,
				Interval:       30 * time.Second,
				Player:         "mpg123",
				PlayerArgs:     []string{"-q"},
				Templates: TemplateConfig{
					FiredTitle:      DefaultFiredTitle,
					FiredMessage:    DefaultFiredMessage,
					ResolvedTitle:   DefaultResolvedTitle,
					ResolvedMessage: DefaultResolvedMessage,
				},
			},
		},
		{
			name:    "invalid_json",
			content: `{"region": "Odesa", "data_url": `,
			wantErr: true,
		},
		{
			name:    "missing_region",
			content: `{"data_url": "http://x"}`,
			wantErr: true,
		},
		{
			name:    "missing_data_url",
			content: `{"region": "Odesa"}`,
			wantErr: true,
		},
		{
			name:    "negative_timeout",
			content: `{"region": "Odesa", "data_url": "http://x", "request_timeout": -1}`,
			wantErr: true,
		},
		{
			name: "unknown_channel_type",
			content: `{"region": "Odesa", "data_url": "http://x",
  "notification_channels": [{"name": "mail", "type": "email"}]}`,
			wantErr: true,
		},
		{
			name: "channel_missing_name",
			content: `{"region": "Odesa", "data_url": "http://x",
  "notification_channels": [{"type": "stdout"}]}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.json")
			require.NoError(t, os.WriteFile(configFile, []byte(tc.content), 0644))

			cfg, err := LoadConfig(configFile)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("nonexistent.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestGetTelegramChannelConfig(t *testing.T) {
	testCases := []struct {
		name     string
		input    NotificationChannelConfig
		expected *TelegramChannelConfig
		wantErr  bool
	}{
		{
			name: "valid_telegram_config",
			input: NotificationChannelConfig{
				Name: "ops",
				Type: "telegram",
				Config: map[string]interface{}{
					"chat_id":   "-123456789",
					"bot_token": "test-token-123",
				},
			},
			expected: &TelegramChannelConfig{ChatID: "-123456789", BotToken: "test-token-123"},
		},
		{
			name: "numeric_chat_id",
			input: NotificationChannelConfig{
				Name: "ops",
				Type: "telegram",
				Config: map[string]interface{}{
					"chat_id":   -42,
					"bot_token": "test-token-123",
				},
			},
			expected: &TelegramChannelConfig{ChatID: "-42", BotToken: "test-token-123"},
		},
		{
			name: "missing_bot_token",
			input: NotificationChannelConfig{
				Name:   "ops",
				Type:   "telegram",
				Config: map[string]interface{}{"chat_id": "-123456789"},
			},
			wantErr: true,
		},
		{
			name:    "missing_chat_id",
			input:   NotificationChannelConfig{Name: "ops", Type: "telegram", Config: map[string]interface{}{}},
			wantErr: true,
		},
		{
			name:    "wrong_type",
			input:   NotificationChannelConfig{Name: "ops", Type: "stdout"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := GetTelegramChannelConfig(tc.input)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestEnvironmentVariableInjection(t *testing.T) {
	t.Setenv("AIRALERT_TELEGRAM_TOKEN_OPS_CHAT", "env-token")

	content := `{
  "region": "Kharkiv",
  "data_url": "http://localhost/states",
  "notification_channels": [
    {"name": "ops-chat", "type": "telegram", "config": {"chat_id": "-100"}}
  ]
}`
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)

	telegramResult, err := GetTelegramChannelConfig(cfg.NotificationChannels[0])
	require.NoError(t, err)
	assert.Equal(t, "env-token", telegramResult.BotToken)
	assert.Equal(t, "-100", telegramResult.ChatID)
}

func TestLoadConfigNumericChatID(t *testing.T) {
	t.Setenv("AIRALERT_TELEGRAM_TOKEN_OPS", "env-token")

	content := `{
  "region": "Kharkiv",
  "data_url": "http://localhost/states",
  "notification_channels": [
    {"name": "ops", "type": "telegram", "config": {"chat_id": -1001234567890}}
  ]
}`
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)

	telegramResult, err := GetTelegramChannelConfig(cfg.NotificationChannels[0])
	require.NoError(t, err)
	assert.Equal(t, "-1001234567890", telegramResult.ChatID)
}
