package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
	"github.com/hamed0406/webmonitor/internal/repo"
)

// Store keeps alert state in memory. Suited to the long-running HTTP
// trigger and to tests; one-shot runs need the postgres store to carry
// state across invocations.
type Store struct {
	mu     sync.RWMutex
	alerts map[string]repo.AlertRecord
}

var _ repo.AlertStore = (*Store)(nil)

func New() *Store {
	return &Store{alerts: make(map[string]repo.AlertRecord)}
}

func (m *Store) Get(ctx context.Context, targetURL string) (*repo.AlertRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.alerts[targetURL]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (m *Store) Set(ctx context.Context, targetURL string, class domain.Class, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[targetURL] = repo.AlertRecord{
		TargetURL:  targetURL,
		LastClass:  class,
		LastSentAt: sentAt,
	}
	return nil
}
