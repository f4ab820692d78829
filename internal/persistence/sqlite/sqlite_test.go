package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/example/yamp/internal/persistence"
)

func newTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	pool, err := NewConnectionPool(dbPath)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	return pool
}

func TestMigrate_Rerun(t *testing.T) {
	pool := newTestPool(t)

	// Running migrations again must be a no-op.
	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Second Migrate failed: %v", err)
	}

	var version int
	err := pool.DB().QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != migrations[len(migrations)-1].version {
		t.Errorf("Expected schema version %d, got %d", migrations[len(migrations)-1].version, version)
	}
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO users (id, user_name, email, password_hash, created_at, updated_at)
			VALUES ('u1', 'alice', 'alice@example.com', 'hash', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
		if execErr != nil {
			t.Fatalf("Insert inside transaction failed: %v", execErr)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected transaction error to surface, got %v", err)
	}

	var count int
	if err := pool.DB().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected rollback to leave 0 users, got %d", count)
	}
}

func TestWithTransaction_Commit(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	err := pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO users (id, user_name, email, password_hash, created_at, updated_at)
			VALUES ('u1', 'alice', 'alice@example.com', 'hash', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
		return execErr
	})
	if err != nil {
		t.Fatalf("WithTransaction failed: %v", err)
	}

	var count int
	if err := pool.DB().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user after commit, got %d", count)
	}
}

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	if got := mapper.MapError(nil); got != nil {
		t.Errorf("Expected nil for nil input, got %v", got)
	}
	if got := mapper.MapError(sql.ErrNoRows); !errors.Is(got, persistence.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for sql.ErrNoRows, got %v", got)
	}
	if got := mapper.MapError(fmt.Errorf("constraint failed: UNIQUE constraint failed: users.email")); !errors.Is(got, persistence.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for unique violation, got %v", got)
	}
	if got := mapper.MapError(fmt.Errorf("constraint failed: NOT NULL constraint failed: users.email")); !errors.Is(got, persistence.ErrConstraintViolation) {
		t.Errorf("Expected ErrConstraintViolation for not-null violation, got %v", got)
	}

	opaque := errors.New("disk I/O error")
	if got := mapper.MapError(opaque); !errors.Is(got, opaque) {
		t.Errorf("Expected opaque error to pass through, got %v", got)
	}
}
