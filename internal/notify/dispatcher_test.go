package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// fake sender you can script per call
type fakeSender struct {
	errs  []error
	calls int
}

func (f *fakeSender) Send(ctx context.Context, creds domain.Credentials, msg domain.Message) error {
	i := f.calls
	f.calls++
	if i >= len(f.errs) {
		return nil
	}
	return f.errs[i]
}

func slackCreds() domain.Credentials {
	return domain.SlackCreds{WebhookURL: "https://hooks.slack.com/x"}
}

func TestDispatch_FirstAttemptOK(t *testing.T) {
	f := &fakeSender{}
	d := &Dispatcher{Slack: f, Backoff: time.Millisecond}

	sent, err := d.Dispatch(context.Background(), domain.ChannelSlack, slackCreds(), domain.Message{})
	if err != nil || !sent {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if f.calls != 1 {
		t.Fatalf("calls = %d, want 1", f.calls)
	}
}

func TestDispatch_RetryOnceThenOK(t *testing.T) {
	f := &fakeSender{errs: []error{errors.New("rate limited")}}
	d := &Dispatcher{Slack: f, Backoff: time.Millisecond}

	sent, err := d.Dispatch(context.Background(), domain.ChannelSlack, slackCreds(), domain.Message{})
	if err != nil || !sent {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if f.calls != 2 {
		t.Fatalf("calls = %d, want 2", f.calls)
	}
}

func TestDispatch_RetryOnceThenFail(t *testing.T) {
	f := &fakeSender{errs: []error{errors.New("boom1"), errors.New("boom2")}}
	d := &Dispatcher{Slack: f, Backoff: time.Millisecond}

	sent, err := d.Dispatch(context.Background(), domain.ChannelSlack, slackCreds(), domain.Message{})
	if sent {
		t.Fatal("should not report sent")
	}
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("exactly one retry allowed, got %d calls", f.calls)
	}
}

func TestDispatch_CancelledDuringBackoff(t *testing.T) {
	f := &fakeSender{errs: []error{errors.New("boom")}}
	d := &Dispatcher{Slack: f, Backoff: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	sent, err := d.Dispatch(ctx, domain.ChannelSlack, slackCreds(), domain.Message{})
	if sent {
		t.Fatal("should not report sent")
	}
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("no retry after cancellation, got %d calls", f.calls)
	}
}

func TestDispatch_CredentialMismatch(t *testing.T) {
	f := &fakeSender{}
	d := &Dispatcher{Slack: f, Telegram: f}

	sent, err := d.Dispatch(context.Background(), domain.ChannelTelegram, slackCreds(), domain.Message{})
	if sent || err == nil {
		t.Fatalf("sent=%v err=%v, want mismatch failure", sent, err)
	}
	if f.calls != 0 {
		t.Fatal("mismatch must fail before any send")
	}
}

// The dispatched error reaches outcome logs and the invoke response;
// after both attempts fail it must still be free of credential material.
func TestDispatch_FailedDeliveryErrorOmitsCredentials(t *testing.T) {
	d := &Dispatcher{
		Slack:    &Slack{Client: testClient()},
		Telegram: &Telegram{Client: testClient(), APIBase: "http://127.0.0.1:1"},
		Backoff:  time.Millisecond,
	}

	sent, err := d.Dispatch(context.Background(), domain.ChannelSlack,
		domain.SlackCreds{WebhookURL: "http://127.0.0.1:1/services/T0/B0/hookpath"}, domain.Message{Title: "X"})
	if sent || !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if strings.Contains(err.Error(), "hookpath") {
		t.Fatalf("webhook URL in error: %v", err)
	}

	sent, err = d.Dispatch(context.Background(), domain.ChannelTelegram,
		domain.TelegramCreds{BotToken: "123:bottoken", ChatID: "42"}, domain.Message{Title: "X"})
	if sent || !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if strings.Contains(err.Error(), "bottoken") {
		t.Fatalf("bot token in error: %v", err)
	}
}

func TestDispatch_Routing(t *testing.T) {
	slack := &fakeSender{}
	tg := &fakeSender{}
	d := &Dispatcher{Slack: slack, Telegram: tg, Backoff: time.Millisecond}

	_, _ = d.Dispatch(context.Background(), domain.ChannelTelegram, domain.TelegramCreds{BotToken: "t", ChatID: "1"}, domain.Message{})
	if tg.calls != 1 || slack.calls != 0 {
		t.Fatalf("telegram=%d slack=%d", tg.calls, slack.calls)
	}
}
