package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/metrics"

	"go.uber.org/zap"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier is the group notification channel
type TelegramNotifier struct {
	config     *config.TelegramConfig
	httpClient *http.Client
	apiBase    string
}

// TelegramMessage is the sendMessage request payload
type TelegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// TelegramResponse is the Telegram API response envelope
type TelegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// NewTelegramNotifier creates a Telegram notifier
func NewTelegramNotifier(cfg *config.TelegramConfig) *TelegramNotifier {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramNotifier{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    telegramAPIBase,
	}
}

// WithAPIBase overrides the Telegram API base URL (used by tests)
func (t *TelegramNotifier) WithAPIBase(base string) *TelegramNotifier {
	t.apiBase = strings.TrimSuffix(base, "/")
	return t
}

// NotifyGroup sends one combined message listing the newly available items
// grouped per store. Rendered items are HTML anchor lines.
func (t *TelegramNotifier) NotifyGroup(ctx context.Context, groups []StoreGroup) error {
	if len(groups) == 0 {
		return nil
	}

	sections := make([]string, 0, len(groups))
	for _, group := range groups {
		lines := make([]string, 0, len(group.Items))
		for _, item := range group.Items {
			lines = append(lines, "• "+item)
		}
		sections = append(sections, group.StoreName+":\n"+strings.Join(lines, "\n"))
	}

	text := "🛒 Stock Alert\n\nThe following items are now available:\n\n" +
		strings.Join(sections, "\n\n")

	msg := &TelegramMessage{
		ChatID:                t.config.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	return t.send(ctx, msg)
}

// send posts one message to the Telegram bot API
func (t *TelegramNotifier) send(ctx context.Context, msg *TelegramMessage) error {
	if !t.config.Enabled {
		logger.Debug("Telegram notifications disabled")
		return nil
	}
	if t.config.BotToken == "" || t.config.ChatID == "" {
		return fmt.Errorf("telegram bot token or chat ID not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.config.BotToken)

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		metrics.RecordNotificationFailure("telegram")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		metrics.RecordNotificationFailure("telegram")
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !telegramResp.OK {
		metrics.RecordNotificationFailure("telegram")
		return fmt.Errorf("telegram API error: %s (code: %d)", telegramResp.Description, telegramResp.ErrorCode)
	}

	metrics.RecordNotificationSent("telegram")
	logger.Info("Telegram message sent", zap.String("chat_id", t.config.ChatID))
	return nil
}
