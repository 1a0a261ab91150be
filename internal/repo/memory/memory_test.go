package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

func TestStore_GetMissing(t *testing.T) {
	s := New()
	rec, err := s.Get(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatalf("want nil record, got %+v", rec)
	}
}

func TestStore_SetGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Set(ctx, "https://example.com", domain.ClassUnhealthy, now); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec, err := s.Get(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.LastClass != domain.ClassUnhealthy || !rec.LastSentAt.Equal(now) {
		t.Fatalf("record = %+v", rec)
	}

	// upsert replaces
	if err := s.Set(ctx, "https://example.com", domain.ClassHealthy, now.Add(time.Minute)); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec, _ = s.Get(ctx, "https://example.com")
	if rec.LastClass != domain.ClassHealthy {
		t.Fatalf("record = %+v", rec)
	}
}
