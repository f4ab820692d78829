package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateUser inserts a new user row.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.UserName == "" || user.Email == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query := `
		INSERT INTO users (id, user_name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		user.ID,
		user.UserName,
		normalizeEmail(user.Email),
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, user_name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return r.scanUser(r.helper.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if email == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, user_name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	return r.scanUser(r.helper.QueryRow(ctx, query, normalizeEmail(email)))
}

// ListUsers returns all users ordered by creation timestamp then ID.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	query := `
		SELECT id, user_name, email, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		var user persistence.User
		var createdAt, updatedAt string
		if err := rows.Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		if user.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		if user.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return users, nil
}

// UpdateUser applies a sparse update built from the non-nil patch fields.
func (r *UserRepository) UpdateUser(ctx context.Context, patch persistence.UserPatch) error {
	if patch.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	assignments := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.UserName != nil {
		assignments = append(assignments, "user_name = ?")
		args = append(args, *patch.UserName)
	}
	if patch.Email != nil {
		assignments = append(assignments, "email = ?")
		args = append(args, normalizeEmail(*patch.Email))
	}
	if patch.PasswordHash != nil {
		assignments = append(assignments, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}

	assignments = append(assignments, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()))
	args = append(args, patch.ID)

	query := "UPDATE users SET " + joinAssignments(assignments) + " WHERE id = ?"

	result, err := r.helper.Exec(ctx, query, args...)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// DeleteUser removes a user together with the meetings the user initiated and
// the invitations attached to those meetings. Children are removed first; a
// missing user rolls the whole transaction back.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := r.helper.ExecTx(ctx, tx,
			`DELETE FROM invitations WHERE meeting_id IN (SELECT id FROM meetings WHERE initiated_by = ?)`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		_, err = r.helper.ExecTx(ctx, tx, `DELETE FROM meetings WHERE initiated_by = ?`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(ctx, tx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		return nil
	})
}

// DeleteAllUsers clears users, meetings, and invitations in one transaction.
func (r *UserRepository) DeleteAllUsers(ctx context.Context) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM invitations`,
			`DELETE FROM meetings`,
			`DELETE FROM users`,
		} {
			if _, err := r.helper.ExecTx(ctx, tx, stmt); err != nil {
				return r.mapper.MapError(err)
			}
		}
		return nil
	})
}

func (r *UserRepository) scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	var createdAt, updatedAt string

	err := row.Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, r.mapper.MapError(err)
	}

	if user.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.User{}, err
	}

	return user, nil
}
