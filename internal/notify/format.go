package notify

import (
	"fmt"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// BuildMessage renders a probe result as a notification. Unhealthy and
// unreachable results are alerts carrying the target URL, the observed
// status or error, and the check timestamp.
func BuildMessage(r domain.ProbeResult, targetURL string, at time.Time) domain.Message {
	ts := at.UTC().Format(time.RFC3339)
	lat := r.Latency.Round(time.Millisecond)

	switch r.Class {
	case domain.ClassHealthy:
		return domain.Message{
			Title:    "🟢 Target RECOVERED",
			Body:     fmt.Sprintf("URL: %s\nHTTP: %d\nLatency: %s\nChecked: %s", targetURL, r.HTTPStatus, lat, ts),
			Severity: domain.SeverityInfo,
		}
	case domain.ClassUnhealthy:
		return domain.Message{
			Title:    "🔴 Target DOWN",
			Body:     fmt.Sprintf("URL: %s\nHTTP: %d\nLatency: %s\nChecked: %s", targetURL, r.HTTPStatus, lat, ts),
			Severity: domain.SeverityAlert,
		}
	default:
		return domain.Message{
			Title:    "🔴 Target DOWN",
			Body:     fmt.Sprintf("URL: %s\nError: %s\nChecked: %s", targetURL, r.Detail, ts),
			Severity: domain.SeverityAlert,
		}
	}
}
