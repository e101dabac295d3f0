package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalSeconds = 30
	DefaultPlayer          = "mpg123"
)

// Default dialog texts. They are text/template strings rendered against notifier.NotificationData.
const (
	DefaultFiredTitle      = "ВСІ В УКРИТТЯ!!!"
	DefaultFiredMessage    = "Увага! Повітряна тривога в регіоні: {{.Region}}!"
	DefaultResolvedTitle   = "МОЖНА ПОВЕРТАТИСЬ НА РОБОЧІ МІСЦЯ!"
	DefaultResolvedMessage = "Відбій повітряної тривоги в регіоні: {{.Region}}!"
)

// Config is read once at startup. The file is JSON; anything that is not valid
// JSON is parsed as YAML with the same keys.
type Config struct {
	Region                string                      `yaml:"region" json:"region"`
	AlertOnSound          string                      `yaml:"alert_on" json:"alert_on"`
	AlertOffSound         string                      `yaml:"alert_off" json:"alert_off"`
	DataURL               string                      `yaml:"data_url" json:"data_url"`
	UpdateInterval        int                         `yaml:"update_interval" json:"update_interval"` // seconds
	RequestTimeoutSeconds int                         `yaml:"request_timeout" json:"request_timeout"` // 0 means no timeout
	Player                string                      `yaml:"player" json:"player"`
	PlayerArgs            []string                    `yaml:"player_args" json:"player_args"`
	Templates             TemplateConfig              `yaml:"templates" json:"templates"`
	NotificationChannels  []NotificationChannelConfig `yaml:"notification_channels" json:"notification_channels"`
	Interval              time.Duration               `yaml:"-" json:"-"` // Derived
	RequestTimeout        time.Duration               `yaml:"-" json:"-"` // Derived
}

type TemplateConfig struct {
	FiredTitle      string `yaml:"fired_title" json:"fired_title"`
	FiredMessage    string `yaml:"fired_message" json:"fired_message"`
	ResolvedTitle   string `yaml:"resolved_title" json:"resolved_title"`
	ResolvedMessage string `yaml:"resolved_message" json:"resolved_message"`
}

type NotificationChannelConfig struct {
	Name   string                 `yaml:"name" json:"name"`
	Type   string                 `yaml:"type" json:"type"` // "stdout", "telegram"
	Config map[string]interface{} `yaml:"config" json:"config"`
}

type TelegramChannelConfig struct {
	BotToken string `yaml:"bot_token" json:"bot_token"` // Will be populated from ENV
	ChatID   string `yaml:"chat_id" json:"chat_id"`
}

func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg Config
	if json.Valid(data) {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("config %s: region is required", filePath)
	}
	if strings.TrimSpace(cfg.DataURL) == "" {
		return nil, fmt.Errorf("config %s: data_url is required", filePath)
	}

	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = DefaultIntervalSeconds
	}
	cfg.Interval = time.Duration(cfg.UpdateInterval) * time.Second

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("config %s: request_timeout must not be negative", filePath)
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.Player == "" {
		cfg.Player = DefaultPlayer
		if cfg.PlayerArgs == nil {
			cfg.PlayerArgs = []string{"-q"}
		}
	}

	for i := range cfg.NotificationChannels {
		nc := &cfg.NotificationChannels[i]
		if nc.Name == "" {
			return nil, fmt.Errorf("notification channel at index %d missing name", i)
		}
		// Secrets come from ENV: AIRALERT_TELEGRAM_TOKEN_<CHANNEL_NAME_UPPERCASE>
		channelNameUpper := strings.ToUpper(strings.ReplaceAll(nc.Name, "-", "_"))

		switch nc.Type {
		case "telegram":
			tokenEnvKey := "AIRALERT_TELEGRAM_TOKEN_" + channelNameUpper
			if token := os.Getenv(tokenEnvKey); token != "" {
				if nc.Config == nil {
					nc.Config = make(map[string]interface{})
				}
				nc.Config["bot_token"] = token
			} else if tok, ok := nc.Config["bot_token"]; ok && tok != "" {
				fmt.Fprintf(os.Stderr, "Warning: Telegram bot token for channel '%s' found in config file. It should be set via ENV var %s.\n", nc.Name, tokenEnvKey)
			}
		case "stdout":
		default:
			return nil, fmt.Errorf("notification channel '%s' has unknown type '%s'", nc.Name, nc.Type)
		}
	}

	if cfg.Templates.FiredTitle == "" {
		cfg.Templates.FiredTitle = DefaultFiredTitle
	}
	if cfg.Templates.FiredMessage == "" {
		cfg.Templates.FiredMessage = DefaultFiredMessage
	}
	if cfg.Templates.ResolvedTitle == "" {
		cfg.Templates.ResolvedTitle = DefaultResolvedTitle
	}
	if cfg.Templates.ResolvedMessage == "" {
		cfg.Templates.ResolvedMessage = DefaultResolvedMessage
	}

	return &cfg, nil
}

// GetTelegramChannelConfig converts the generic channel config into its typed form.
func GetTelegramChannelConfig(nc NotificationChannelConfig) (*TelegramChannelConfig, error) {
	if nc.Type != "telegram" {
		return nil, fmt.Errorf("not a telegram channel")
	}
	var telegramCfg TelegramChannelConfig
	if token, ok := nc.Config["bot_token"].(string); ok {
		telegramCfg.BotToken = token
	}
	// Numeric chat IDs are common in JSON configs.
	switch chatID := nc.Config["chat_id"].(type) {
	case string:
		telegramCfg.ChatID = chatID
	case int:
		telegramCfg.ChatID = fmt.Sprintf("%d", chatID)
	case float64: // encoding/json numbers
		telegramCfg.ChatID = fmt.Sprintf("%d", int64(chatID))
	default:
		return nil, fmt.Errorf("channel '%s': chat_id missing or not a string", nc.Name)
	}

	if telegramCfg.BotToken == "" || telegramCfg.ChatID == "" {
		return nil, fmt.Errorf("channel '%s': bot_token (from ENV) or chat_id are missing", nc.Name)
	}
	return &telegramCfg, nil
}
