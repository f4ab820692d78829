package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// NonMemberMeetingRepository implements persistence.NonMemberMeetingRepository
// using SQLite.
type NonMemberMeetingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewNonMemberMeetingRepository creates a new SQLite non-member meeting
// repository.
func NewNonMemberMeetingRepository(pool *ConnectionPool) *NonMemberMeetingRepository {
	return &NonMemberMeetingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateNonMemberMeeting inserts a new anonymous meeting row.
func (r *NonMemberMeetingRepository) CreateNonMemberMeeting(ctx context.Context, meeting persistence.NonMemberMeeting) error {
	if meeting.ID == "" || meeting.MeetingName == "" || meeting.ProposedDatesAndTimes == "" {
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
		INSERT INTO non_member_meetings (id, meeting_name, meeting_description, user_name, user_email, proposed_dates_and_times, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		meeting.ID,
		meeting.MeetingName,
		nullString(meeting.MeetingDescription),
		meeting.UserName,
		normalizeEmail(meeting.UserEmail),
		meeting.ProposedDatesAndTimes,
		formatTime(meeting.CreatedAt),
		formatTime(meeting.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetNonMemberMeeting retrieves an anonymous meeting by ID.
func (r *NonMemberMeetingRepository) GetNonMemberMeeting(ctx context.Context, id string) (persistence.NonMemberMeeting, error) {
	if id == "" {
		return persistence.NonMemberMeeting{}, persistence.ErrNotFound
	}

	query := selectNonMemberMeetingColumns + ` WHERE id = ?`
	return r.scanNonMemberMeeting(r.helper.QueryRow(ctx, query, id))
}

// ListNonMemberMeetings returns all anonymous meetings.
func (r *NonMemberMeetingRepository) ListNonMemberMeetings(ctx context.Context) ([]persistence.NonMemberMeeting, error) {
	query := selectNonMemberMeetingColumns + ` ORDER BY created_at ASC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var meetings []persistence.NonMemberMeeting
	for rows.Next() {
		var meeting persistence.NonMemberMeeting
		var description sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&meeting.ID, &meeting.MeetingName, &description, &meeting.UserName,
			&meeting.UserEmail, &meeting.ProposedDatesAndTimes, &createdAt, &updatedAt); err != nil {
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

// UpdateNonMemberMeeting applies a sparse update built from the non-nil patch
// fields.
func (r *NonMemberMeetingRepository) UpdateNonMemberMeeting(ctx context.Context, patch persistence.NonMemberMeetingPatch) error {
	if patch.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	assignments := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if patch.MeetingName != nil {
		assignments = append(assignments, "meeting_name = ?")
		args = append(args, *patch.MeetingName)
	}
	if patch.MeetingDescription != nil {
		assignments = append(assignments, "meeting_description = ?")
		args = append(args, *patch.MeetingDescription)
	}
	if patch.UserName != nil {
		assignments = append(assignments, "user_name = ?")
		args = append(args, *patch.UserName)
	}
	if patch.UserEmail != nil {
		assignments = append(assignments, "user_email = ?")
		args = append(args, normalizeEmail(*patch.UserEmail))
	}
	if patch.ProposedDatesAndTimes != nil {
		assignments = append(assignments, "proposed_dates_and_times = ?")
		args = append(args, *patch.ProposedDatesAndTimes)
	}

	assignments = append(assignments, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()))
	args = append(args, patch.ID)

	query := "UPDATE non_member_meetings SET " + joinAssignments(assignments) + " WHERE id = ?"

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

// DeleteNonMemberMeeting removes an anonymous meeting and its invitations in
// one transaction.
func (r *NonMemberMeetingRepository) DeleteNonMemberMeeting(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := r.helper.ExecTx(ctx, tx, `DELETE FROM non_member_invitations WHERE meeting_id = ?`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(ctx, tx, `DELETE FROM non_member_meetings WHERE id = ?`, id)
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

// DeleteAllNonMemberMeetings clears anonymous meetings and invitations in one
// transaction.
func (r *NonMemberMeetingRepository) DeleteAllNonMemberMeetings(ctx context.Context) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM non_member_invitations`,
			`DELETE FROM non_member_meetings`,
		} {
			if _, err := r.helper.ExecTx(ctx, tx, stmt); err != nil {
				return r.mapper.MapError(err)
			}
		}
		return nil
	})
}

const selectNonMemberMeetingColumns = `
	SELECT id, meeting_name, meeting_description, user_name, user_email, proposed_dates_and_times, created_at, updated_at
	FROM non_member_meetings`

func (r *NonMemberMeetingRepository) scanNonMemberMeeting(row *sql.Row) (persistence.NonMemberMeeting, error) {
	var meeting persistence.NonMemberMeeting
	var description sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&meeting.ID, &meeting.MeetingName, &description, &meeting.UserName,
		&meeting.UserEmail, &meeting.ProposedDatesAndTimes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.NonMemberMeeting{}, persistence.ErrNotFound
		}
		return persistence.NonMemberMeeting{}, r.mapper.MapError(err)
	}

	meeting.MeetingDescription = stringPtr(description)
	if meeting.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.NonMemberMeeting{}, err
	}
	if meeting.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.NonMemberMeeting{}, err
	}

	return meeting, nil
}
