package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// MeetingRepository implements persistence.MeetingRepository using SQLite.
type MeetingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMeetingRepository creates a new SQLite meeting repository.
func NewMeetingRepository(pool *ConnectionPool) *MeetingRepository {
	return &MeetingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMeeting inserts a new meeting row.
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if meeting.ID == "" || meeting.MeetingName == "" || meeting.InitiatedBy == "" || meeting.ProposedDatesAndTimes == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = now
	}
	if meeting.UpdatedAt.IsZero() {
		meeting.UpdatedAt = meeting.CreatedAt
	}

	query := `
		INSERT INTO meetings (id, meeting_name, meeting_description, initiated_by, proposed_dates_and_times, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		meeting.ID,
		meeting.MeetingName,
		nullString(meeting.MeetingDescription),
		meeting.InitiatedBy,
		meeting.ProposedDatesAndTimes,
		formatTime(meeting.CreatedAt),
		formatTime(meeting.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetMeeting retrieves a meeting by ID.
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	if id == "" {
		return persistence.Meeting{}, persistence.ErrNotFound
	}

	query := selectMeetingColumns + ` WHERE id = ?`
	return r.scanMeeting(r.helper.QueryRow(ctx, query, id))
}

// ListMeetings returns all meetings ordered by creation timestamp then ID.
func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	query := selectMeetingColumns + ` ORDER BY created_at ASC, id ASC`
	return r.queryMeetings(ctx, query)
}

// ListMeetingsByInitiator returns all meetings initiated by the given user.
func (r *MeetingRepository) ListMeetingsByInitiator(ctx context.Context, userID string) ([]persistence.Meeting, error) {
	if userID == "" {
		return nil, nil
	}
	query := selectMeetingColumns + ` WHERE initiated_by = ? ORDER BY created_at ASC, id ASC`
	return r.queryMeetings(ctx, query, userID)
}

// UpdateMeeting applies a sparse update built from the non-nil patch fields.
func (r *MeetingRepository) UpdateMeeting(ctx context.Context, patch persistence.MeetingPatch) error {
	if patch.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	assignments := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.MeetingName != nil {
		assignments = append(assignments, "meeting_name = ?")
		args = append(args, *patch.MeetingName)
	}
	if patch.MeetingDescription != nil {
		assignments = append(assignments, "meeting_description = ?")
		args = append(args, *patch.MeetingDescription)
	}
	if patch.InitiatedBy != nil {
		assignments = append(assignments, "initiated_by = ?")
		args = append(args, *patch.InitiatedBy)
	}
	if patch.ProposedDatesAndTimes != nil {
		assignments = append(assignments, "proposed_dates_and_times = ?")
		args = append(args, *patch.ProposedDatesAndTimes)
	}

	assignments = append(assignments, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()))
	args = append(args, patch.ID)

	query := "UPDATE meetings SET " + joinAssignments(assignments) + " WHERE id = ?"

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

// DeleteMeeting removes a meeting and its invitations in one transaction,
// invitations first so no dangling references survive a partial failure.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := r.helper.ExecTx(ctx, tx, `DELETE FROM invitations WHERE meeting_id = ?`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(ctx, tx, `DELETE FROM meetings WHERE id = ?`, id)
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

// DeleteAllMeetings clears meetings and invitations in one transaction.
func (r *MeetingRepository) DeleteAllMeetings(ctx context.Context) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM invitations`,
			`DELETE FROM meetings`,
		} {
			if _, err := r.helper.ExecTx(ctx, tx, stmt); err != nil {
				return r.mapper.MapError(err)
			}
		}
		return nil
	})
}

const selectMeetingColumns = `
	SELECT id, meeting_name, meeting_description, initiated_by, proposed_dates_and_times, created_at, updated_at
	FROM meetings`

func (r *MeetingRepository) queryMeetings(ctx context.Context, query string, args ...any) ([]persistence.Meeting, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		var meeting persistence.Meeting
		var description sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&meeting.ID, &meeting.MeetingName, &description, &meeting.InitiatedBy,
			&meeting.ProposedDatesAndTimes, &createdAt, &updatedAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		meeting.MeetingDescription = stringPtr(description)
		if meeting.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		if meeting.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return meetings, nil
}

func (r *MeetingRepository) scanMeeting(row *sql.Row) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var description sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&meeting.ID, &meeting.MeetingName, &description, &meeting.InitiatedBy,
		&meeting.ProposedDatesAndTimes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Meeting{}, persistence.ErrNotFound
		}
		return persistence.Meeting{}, r.mapper.MapError(err)
	}

	meeting.MeetingDescription = stringPtr(description)
	if meeting.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Meeting{}, err
	}

	return meeting, nil
}
