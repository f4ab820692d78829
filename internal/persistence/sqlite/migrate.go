package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migration is a versioned batch of schema statements. Versions must be
// strictly increasing; each batch runs inside its own transaction and is
// recorded in schema_migrations so reruns are no-ops.
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				user_name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS meetings (
				id TEXT PRIMARY KEY,
				meeting_name TEXT NOT NULL,
				meeting_description TEXT,
				initiated_by TEXT NOT NULL,
				proposed_dates_and_times TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS invitations (
				id TEXT PRIMARY KEY,
				meeting_id TEXT NOT NULL,
				attendant_email TEXT NOT NULL,
				accepted_dates_and_times TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_meetings_initiated_by ON meetings (initiated_by)`,
			`CREATE INDEX IF NOT EXISTS idx_invitations_meeting_id ON invitations (meeting_id)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS non_member_meetings (
				id TEXT PRIMARY KEY,
				meeting_name TEXT NOT NULL,
				meeting_description TEXT,
				user_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				proposed_dates_and_times TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS non_member_invitations (
				id TEXT PRIMARY KEY,
				meeting_id TEXT NOT NULL,
				attendant_email TEXT NOT NULL,
				accepted_dates_and_times TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_non_member_invitations_meeting_id ON non_member_invitations (meeting_id)`,
		},
	},
	{
		version: 3,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				token TEXT NOT NULL UNIQUE,
				expires_at TEXT NOT NULL,
				revoked_at TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions (user_id)`,
		},
	},
}

// Migrate applies all pending migrations in order.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	_, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	current, err := cp.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := cp.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
	}

	return nil
}

func (cp *ConnectionPool) currentVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := cp.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

func (cp *ConnectionPool) applyMigration(ctx context.Context, m migration) error {
	return cp.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range m.statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			m.version, time.Now().UTC().Format(time.RFC3339),
		)
		return err
	})
}
