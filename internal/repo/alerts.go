package repo

import (
	"context"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// AlertRecord holds the last classification we notified for a target
// URL and when that notification went out. Used to suppress repeat
// alerts for an unchanged classification when suppression is enabled.
type AlertRecord struct {
	TargetURL  string
	LastClass  domain.Class
	LastSentAt time.Time
}

// AlertStore is implemented by a persistence layer to keep alert state
// across invocations.
type AlertStore interface {
	// Get returns nil, nil if there's no record yet.
	Get(ctx context.Context, targetURL string) (*AlertRecord, error)
	// Set upserts the record.
	Set(ctx context.Context, targetURL string, class domain.Class, sentAt time.Time) error
}
