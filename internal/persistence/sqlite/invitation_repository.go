package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// InvitationRepository implements persistence.InvitationRepository using SQLite.
type InvitationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewInvitationRepository creates a new SQLite invitation repository.
func NewInvitationRepository(pool *ConnectionPool) *InvitationRepository {
	return &InvitationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateInvitation inserts a new invitation row.
func (r *InvitationRepository) CreateInvitation(ctx context.Context, invitation persistence.Invitation) error {
	if invitation.ID == "" || invitation.MeetingID == "" || invitation.AttendantEmail == "" || invitation.AcceptedDatesAndTimes == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = now
	}
	if invitation.UpdatedAt.IsZero() {
		invitation.UpdatedAt = invitation.CreatedAt
	}

	query := `
		INSERT INTO invitations (id, meeting_id, attendant_email, accepted_dates_and_times, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		invitation.ID,
		invitation.MeetingID,
		normalizeEmail(invitation.AttendantEmail),
		invitation.AcceptedDatesAndTimes,
		formatTime(invitation.CreatedAt),
		formatTime(invitation.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetInvitation retrieves an invitation by ID.
func (r *InvitationRepository) GetInvitation(ctx context.Context, id string) (persistence.Invitation, error) {
	if id == "" {
		return persistence.Invitation{}, persistence.ErrNotFound
	}

	query := selectInvitationColumns + ` WHERE id = ?`
	return r.scanInvitation(r.helper.QueryRow(ctx, query, id))
}

// ListInvitations returns all invitations ordered by creation timestamp then ID.
func (r *InvitationRepository) ListInvitations(ctx context.Context) ([]persistence.Invitation, error) {
	query := selectInvitationColumns + ` ORDER BY created_at ASC, id ASC`
	return r.queryInvitations(ctx, query)
}

// ListInvitationsByMeeting returns all invitations referencing a meeting.
func (r *InvitationRepository) ListInvitationsByMeeting(ctx context.Context, meetingID string) ([]persistence.Invitation, error) {
	if meetingID == "" {
		return nil, nil
	}
	query := selectInvitationColumns + ` WHERE meeting_id = ? ORDER BY created_at ASC, id ASC`
	return r.queryInvitations(ctx, query, meetingID)
}

// UpdateInvitation applies a sparse update built from the non-nil patch fields.
func (r *InvitationRepository) UpdateInvitation(ctx context.Context, patch persistence.InvitationPatch) error {
	if patch.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	assignments := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.MeetingID != nil {
		assignments = append(assignments, "meeting_id = ?")
		args = append(args, *patch.MeetingID)
	}
	if patch.AttendantEmail != nil {
		assignments = append(assignments, "attendant_email = ?")
		args = append(args, normalizeEmail(*patch.AttendantEmail))
	}
	if patch.AcceptedDatesAndTimes != nil {
		assignments = append(assignments, "accepted_dates_and_times = ?")
		args = append(args, *patch.AcceptedDatesAndTimes)
	}

	assignments = append(assignments, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()))
	args = append(args, patch.ID)

	query := "UPDATE invitations SET " + joinAssignments(assignments) + " WHERE id = ?"

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

// DeleteInvitation removes an invitation by ID.
func (r *InvitationRepository) DeleteInvitation(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM invitations WHERE id = ?`, id)
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

// DeleteInvitationsByMeeting removes every invitation referencing a meeting.
func (r *InvitationRepository) DeleteInvitationsByMeeting(ctx context.Context, meetingID string) error {
	if meetingID == "" {
		return nil
	}
	_, err := r.helper.Exec(ctx, `DELETE FROM invitations WHERE meeting_id = ?`, meetingID)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteAllInvitations clears the invitations table.
func (r *InvitationRepository) DeleteAllInvitations(ctx context.Context) error {
	if _, err := r.helper.Exec(ctx, `DELETE FROM invitations`); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

const selectInvitationColumns = `
	SELECT id, meeting_id, attendant_email, accepted_dates_and_times, created_at, updated_at
	FROM invitations`

func (r *InvitationRepository) queryInvitations(ctx context.Context, query string, args ...any) ([]persistence.Invitation, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var invitations []persistence.Invitation
	for rows.Next() {
		var invitation persistence.Invitation
		var createdAt, updatedAt string
		if err := rows.Scan(&invitation.ID, &invitation.MeetingID, &invitation.AttendantEmail,
			&invitation.AcceptedDatesAndTimes, &createdAt, &updatedAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		if invitation.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		if invitation.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return invitations, nil
}

func (r *InvitationRepository) scanInvitation(row *sql.Row) (persistence.Invitation, error) {
	var invitation persistence.Invitation
	var createdAt, updatedAt string

	err := row.Scan(&invitation.ID, &invitation.MeetingID, &invitation.AttendantEmail,
		&invitation.AcceptedDatesAndTimes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Invitation{}, persistence.ErrNotFound
		}
		return persistence.Invitation{}, r.mapper.MapError(err)
	}

	if invitation.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Invitation{}, err
	}
	if invitation.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Invitation{}, err
	}

	return invitation, nil
}
