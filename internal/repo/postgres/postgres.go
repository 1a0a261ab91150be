package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/webmonitor/internal/domain"
	"github.com/hamed0406/webmonitor/internal/repo"
)

var _ repo.AlertStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS alert_state (
			target_url   TEXT PRIMARY KEY,
			last_class   TEXT NOT NULL,
			last_sent_at TIMESTAMPTZ
		)`
	if _, err := s.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, targetURL string) (*repo.AlertRecord, error) {
	const q = `SELECT last_class, last_sent_at FROM alert_state WHERE target_url=$1`
	rec := repo.AlertRecord{TargetURL: targetURL}
	var class string
	var sentAt *time.Time
	err := s.pool.QueryRow(ctx, q, targetURL).Scan(&class, &sentAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rec.LastClass = domain.Class(class)
	if sentAt != nil {
		rec.LastSentAt = *sentAt
	}
	return &rec, nil
}

func (s *Store) Set(ctx context.Context, targetURL string, class domain.Class, sentAt time.Time) error {
	const q = `
		INSERT INTO alert_state (target_url, last_class, last_sent_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (target_url)
		DO UPDATE SET last_class=EXCLUDED.last_class, last_sent_at=EXCLUDED.last_sent_at
	`
	var ts *time.Time
	if !sentAt.IsZero() {
		ts = &sentAt
	}
	_, err := s.pool.Exec(ctx, q, targetURL, string(class), ts)
	return err
}
