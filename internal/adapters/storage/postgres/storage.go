package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/adapters/storage/postgres/db"
	"dollhouse-lurker/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const backendName = "postgres"

// PostgresStore keeps each document as one JSONB row.
type PostgresStore struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{
		pool: pool,
		q:    db.New(pool),
	}

	if err := store.q.CreateDocumentsTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Load(ctx context.Context, name string, dst any) error {
	body, err := s.q.GetDocument(ctx, name)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.insertDefault(ctx, name, dst)
	}
	if err != nil {
		return fmt.Errorf("get document %s: %w", name, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: document %s: %v", domain.ErrDataCorruption, name, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", name, err)
	}

	start := time.Now()
	err = s.q.UpsertDocument(ctx, db.UpsertDocumentParams{Name: name, Body: body})
	metrics.StorageSaveDuration.WithLabelValues(name, backendName).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("save document %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) insertDefault(ctx context.Context, name string, dst any) error {
	body, err := json.Marshal(dst)
	if err != nil {
		return fmt.Errorf("encode default %s: %w", name, err)
	}

	if err := s.q.InsertDocumentIfAbsent(ctx, db.InsertDocumentIfAbsentParams{Name: name, Body: body}); err != nil {
		return fmt.Errorf("create document %s: %w", name, err)
	}
	return nil
}
