package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// Dispatcher routes a message to the sender for the selected channel
// and applies the delivery retry policy: at most one retry after a
// short fixed backoff. Webhook endpoints occasionally reject the first
// request under rate limiting but accept a prompt second one.
type Dispatcher struct {
	Slack    Sender
	Telegram Sender
	Backoff  time.Duration
}

func NewDispatcher(backoff time.Duration) *Dispatcher {
	client := &http.Client{Timeout: 10 * time.Second}
	return &Dispatcher{
		Slack:    &Slack{Client: client},
		Telegram: &Telegram{Client: client},
		Backoff:  backoff,
	}
}

// Dispatch delivers msg through ch. A credential/channel mismatch is a
// configuration error and fails without touching the network.
func (d *Dispatcher) Dispatch(ctx context.Context, ch domain.Channel, creds domain.Credentials, msg domain.Message) (bool, error) {
	if creds == nil || creds.Channel() != ch {
		return false, fmt.Errorf("credentials do not match channel %q", ch)
	}

	var s Sender
	switch ch {
	case domain.ChannelSlack:
		s = d.Slack
	case domain.ChannelTelegram:
		s = d.Telegram
	default:
		return false, fmt.Errorf("no sender for channel %q", ch)
	}

	first := s.Send(ctx, creds, msg)
	if first == nil {
		return true, nil
	}
	if err := sleep(ctx, d.Backoff); err != nil {
		return false, fmt.Errorf("%w: %v", ErrDeliveryFailed, multierr.Append(first, err))
	}
	if retry := s.Send(ctx, creds, msg); retry != nil {
		return false, fmt.Errorf("%w: %v", ErrDeliveryFailed, multierr.Append(first, retry))
	}
	return true, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
