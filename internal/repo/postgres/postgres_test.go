package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// Integration test; runs only when TEST_DATABASE_URL points at a
// disposable database.
func TestStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	url := "https://example.com/it-" + time.Now().UTC().Format("150405.000000000")

	rec, err := s.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatalf("want no record, got %+v", rec)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := s.Set(ctx, url, domain.ClassUnreachable, now); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec, err = s.Get(ctx, url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.LastClass != domain.ClassUnreachable || !rec.LastSentAt.Equal(now) {
		t.Fatalf("record = %+v", rec)
	}

	if err := s.Set(ctx, url, domain.ClassHealthy, now.Add(time.Minute)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, _ = s.Get(ctx, url)
	if rec.LastClass != domain.ClassHealthy {
		t.Fatalf("record after upsert = %+v", rec)
	}
}
