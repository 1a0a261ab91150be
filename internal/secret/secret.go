package secret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hamed0406/webmonitor/internal/domain"
)

var (
	// ErrNotFound: the identifier does not exist upstream.
	ErrNotFound = errors.New("secret not found")
	// ErrMalformed: the payload cannot be decoded into credentials for
	// the selected channel. Not retried; same inputs cannot succeed.
	ErrMalformed = errors.New("secret malformed")
	// ErrUnavailable: transient store failure. The next scheduled
	// invocation is the retry.
	ErrUnavailable = errors.New("secret store unavailable")
)

// Resolver fetches and decodes channel credentials. One best-effort
// fetch per invocation, bounded in time, no internal retry.
type Resolver interface {
	Resolve(ctx context.Context, secretID string, ch domain.Channel) (domain.Credentials, error)
}

// payload mirrors the stored secret blob. Only the fields matching the
// selected channel are required to be present and non-empty.
type payload struct {
	SlackWebhookURL  string `json:"slack_webhook_url"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`
}

// Decode turns a raw secret payload into credentials for ch. A payload
// that only carries the other channel's fields is a configuration
// error and fails here, before any probe or delivery I/O.
func Decode(raw []byte, ch domain.Channel) (domain.Credentials, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrMalformed)
	}
	switch ch {
	case domain.ChannelSlack:
		if strings.TrimSpace(p.SlackWebhookURL) == "" {
			return nil, fmt.Errorf("%w: slack_webhook_url is missing or empty", ErrMalformed)
		}
		return domain.SlackCreds{WebhookURL: p.SlackWebhookURL}, nil
	case domain.ChannelTelegram:
		if strings.TrimSpace(p.TelegramBotToken) == "" || strings.TrimSpace(p.TelegramChatID) == "" {
			return nil, fmt.Errorf("%w: telegram_bot_token and telegram_chat_id are required", ErrMalformed)
		}
		return domain.TelegramCreds{BotToken: p.TelegramBotToken, ChatID: p.TelegramChatID}, nil
	}
	return nil, fmt.Errorf("%w: no decoder for channel %q", ErrMalformed, ch)
}
