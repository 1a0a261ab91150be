package notify

import (
	"context"
	"errors"
	"net/url"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// ErrDeliveryFailed marks a notification that could not be delivered
// after the single retry. The next scheduled invocation is the outer
// retry.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Sender delivers one message through a single channel transport.
// Senders decide HOW to deliver; whether to send at all is the
// orchestrator's call.
type Sender interface {
	Send(ctx context.Context, creds domain.Credentials, msg domain.Message) error
}

// transportReason reduces a send failure to a short diagnostic that
// never carries the request URL: the webhook URL and the bot-token path
// are credentials, and sender errors end up in outcome logs and the
// invoke response.
func transportReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return "timeout"
		}
		return uerr.Err.Error()
	}
	return "transport error"
}
