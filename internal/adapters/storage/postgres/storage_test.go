package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"dollhouse-lurker/internal/adapters/storage/postgres/db"
	"dollhouse-lurker/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				if args[0] != "levels" {
					t.Errorf("expected name 'levels', got %v", args[0])
				}
				return rowWithBody(`{"g1":{"u1":{"xp":7,"level":2}}}`)
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]map[string]domain.UserProgress{}
		if err := store.Load(ctx, "levels", &doc); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if doc["g1"]["u1"].Level != 2 {
			t.Errorf("Expected level 2, got %+v", doc["g1"]["u1"])
		}
		if len(mockDB.execCalls) != 0 {
			t.Error("Existing document must not be rewritten on load")
		}
	})

	t.Run("Missing inserts default", func(t *testing.T) {
		mockDB := &MockDB{}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]domain.GuildConfig{}
		if err := store.Load(ctx, "config", &doc); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(mockDB.execCalls) != 1 {
			t.Fatalf("Expected 1 insert, got %d", len(mockDB.execCalls))
		}
		call := mockDB.execCalls[0]
		if !strings.Contains(call.sql, "ON CONFLICT (name) DO NOTHING") {
			t.Errorf("Expected insert-if-absent, got %s", call.sql)
		}
		if call.args[0] != "config" || string(call.args[1].([]byte)) != "{}" {
			t.Errorf("Unexpected args: %v", call.args)
		}
	})

	t.Run("Corrupt", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				return rowWithBody(`[1,2,3]`)
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]domain.GuildConfig{}
		err := store.Load(ctx, "config", &doc)
		if !errors.Is(err, domain.ErrDataCorruption) {
			t.Fatalf("Expected ErrDataCorruption, got %v", err)
		}
	})

	t.Run("Query error", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				return &MockRow{ScanFunc: func(dest ...any) error { return errors.New("connection reset") }}
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]domain.GuildConfig{}
		err := store.Load(ctx, "config", &doc)
		if err == nil || errors.Is(err, domain.ErrDataCorruption) {
			t.Fatalf("Expected plain query error, got %v", err)
		}
	})

	t.Run("Insert error", func(t *testing.T) {
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("db error")
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]domain.GuildConfig{}
		if err := store.Load(ctx, "config", &doc); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

func TestPostgresStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockDB := &MockDB{}

		store := &PostgresStore{q: db.New(mockDB)}
		doc := map[string]domain.GuildConfig{"g1": {Autorole: "r1"}}
		if err := store.Save(ctx, "config", doc); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(mockDB.execCalls) != 1 {
			t.Fatalf("Expected 1 exec, got %d", len(mockDB.execCalls))
		}
		call := mockDB.execCalls[0]
		if !strings.Contains(call.sql, "DO UPDATE SET body") {
			t.Errorf("Expected upsert, got %s", call.sql)
		}

		var saved map[string]domain.GuildConfig
		if err := json.Unmarshal(call.args[1].([]byte), &saved); err != nil {
			t.Fatalf("Saved body is not JSON: %v", err)
		}
		if saved["g1"].Autorole != "r1" {
			t.Errorf("Unexpected body: %s", call.args[1])
		}
	})

	t.Run("Error", func(t *testing.T) {
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("db error")
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		if err := store.Save(ctx, "levels", map[string]int{}); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

func TestPostgresStore_CloseWithoutPool(t *testing.T) {
	store := &PostgresStore{}
	store.Close()
}
