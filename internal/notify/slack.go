package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hamed0406/webmonitor/internal/domain"
)

type Slack struct {
	Client *http.Client
}

var _ Sender = (*Slack)(nil)

type slackPayload struct {
	Text string `json:"text"`
}

func (s *Slack) Send(ctx context.Context, creds domain.Credentials, msg domain.Message) error {
	sc, ok := creds.(domain.SlackCreds)
	if !ok || sc.WebhookURL == "" {
		return errors.New("slack credentials missing")
	}
	body, _ := json.Marshal(slackPayload{Text: "*" + msg.Title + "*\n" + msg.Body})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.New("invalid slack webhook url")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("slack webhook: %s", transportReason(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack webhook returned %s", resp.Status)
	}
	return nil
}
