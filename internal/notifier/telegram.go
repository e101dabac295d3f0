package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mattmezza/airalert/internal/config"
)

const telegramAPIBase = "https://api.telegram.org"

type TelegramNotifier struct {
	name    string
	config  config.TelegramChannelConfig
	client  *http.Client
	apiBase string
}

func NewTelegramNotifier(name string, cfg config.TelegramChannelConfig) (*TelegramNotifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram notifier '%s' is missing bot_token (from ENV) or chat_id", name)
	}
	return &TelegramNotifier{
		name:    name,
		config:  cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: telegramAPIBase,
	}, nil
}

func (tn *TelegramNotifier) Name() string {
	return tn.name
}

// Send posts the rendered title and message as one MarkdownV2 message, title in bold.
func (tn *TelegramNotifier) Send(data NotificationData) error {
	text := "*" + escapeTextForMarkdownV2(data.Title) + "*\n" + escapeTextForMarkdownV2(data.Message)

	payloadBytes, err := json.Marshal(map[string]string{
		"chat_id":    tn.config.ChatID,
		"text":       text,
		"parse_mode": "MarkdownV2",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal Telegram payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", tn.apiBase, tn.config.BotToken)
	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create Telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tn.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// escapeTextForMarkdownV2 escapes text for Telegram MarkdownV2.
// Telegram requires escaping: _ * [ ] ( ) ~ ` > # + - = | { } . ! and backslash itself.
func escapeTextForMarkdownV2(text string) string {
	const escapeChars = "\\_*[]()~`>#+-=|{}.!"
	var result strings.Builder
	for _, r := range text {
		if strings.ContainsRune(escapeChars, r) {
			result.WriteByte('\\')
		}
		result.WriteRune(r)
	}
	return result.String()
}
