package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hamed0406/webmonitor/internal/domain"
)

const telegramAPI = "https://api.telegram.org"

type Telegram struct {
	Client  *http.Client
	APIBase string // defaults to the public Bot API
}

var _ Sender = (*Telegram)(nil)

func (t *Telegram) Send(ctx context.Context, creds domain.Credentials, msg domain.Message) error {
	tc, ok := creds.(domain.TelegramCreds)
	if !ok || tc.BotToken == "" || tc.ChatID == "" {
		return errors.New("telegram credentials missing")
	}
	base := t.APIBase
	if base == "" {
		base = telegramAPI
	}

	form := url.Values{}
	form.Set("chat_id", tc.ChatID)
	form.Set("text", "*"+msg.Title+"*\n\n"+msg.Body)
	form.Set("parse_mode", "Markdown")

	endpoint := base + "/bot" + tc.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.New("invalid telegram endpoint")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram api: %s", transportReason(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("telegram api returned %s", resp.Status)
	}
	return nil
}
