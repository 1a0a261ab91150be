package domain

import (
	"fmt"
	"strings"
	"time"
)

// Channel selects the notification transport. The set is closed;
// configuration validates against it before an invocation runs.
type Channel string

const (
	ChannelSlack    Channel = "slack"
	ChannelTelegram Channel = "telegram"
)

func ParseChannel(s string) (Channel, error) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelSlack:
		return ChannelSlack, nil
	case ChannelTelegram:
		return ChannelTelegram, nil
	}
	return "", fmt.Errorf("unknown notification channel %q", s)
}

// Class is the three-way probe classification.
type Class string

const (
	ClassHealthy     Class = "healthy"
	ClassUnhealthy   Class = "unhealthy"
	ClassUnreachable Class = "unreachable"
)

type ProbeTarget struct {
	URL     string        `json:"url"`
	Method  string        `json:"method,omitempty"` // GET (default) or HEAD
	Timeout time.Duration `json:"timeout"`
}

// ProbeResult is the outcome of a single probe. HTTPStatus is 0 and
// Detail non-empty only for the unreachable class.
type ProbeResult struct {
	Class      Class         `json:"class"`
	HTTPStatus int           `json:"http_status,omitempty"`
	Latency    time.Duration `json:"latency"`
	Detail     string        `json:"detail,omitempty"`
}

type Severity string

const (
	SeverityAlert Severity = "alert"
	SeverityInfo  Severity = "info"
)

// Message is a channel-agnostic notification; senders render it for
// their transport.
type Message struct {
	Title    string
	Body     string
	Severity Severity
}

// State tracks the orchestration steps of one invocation.
type State string

const (
	StateStart          State = "start"
	StateSecretResolved State = "secret_resolved"
	StateProbed         State = "probed"
	StateNotified       State = "notified"
	StateDone           State = "done"
	StateError          State = "error"
)

// Outcome is the record of one invocation, surfaced to the invoking
// platform via the outcome log line and the exit code.
type Outcome struct {
	State           State
	Result          *ProbeResult
	NotifyAttempted bool
	NotifySent      bool
	Suppressed      bool
	Err             error
	Elapsed         time.Duration
}

// Succeeded reports whether the invocation counts as a success: it
// reached done and the notification was delivered, intentionally
// skipped, or suppressed. A failed delivery fails the run even though
// the probe classification stands.
func (o Outcome) Succeeded() bool {
	if o.State != StateDone {
		return false
	}
	if o.NotifyAttempted && !o.NotifySent {
		return false
	}
	return true
}
