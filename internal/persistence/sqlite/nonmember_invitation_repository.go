package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// NonMemberInvitationRepository implements
// persistence.NonMemberInvitationRepository using SQLite.
type NonMemberInvitationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewNonMemberInvitationRepository creates a new SQLite non-member invitation
// repository.
func NewNonMemberInvitationRepository(pool *ConnectionPool) *NonMemberInvitationRepository {
	return &NonMemberInvitationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateNonMemberInvitation inserts a new anonymous invitation row.
func (r *NonMemberInvitationRepository) CreateNonMemberInvitation(ctx context.Context, invitation persistence.NonMemberInvitation) error {
	if invitation.ID == "" || invitation.MeetingID == "" || invitation.AttendantEmail == "" {
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
		INSERT INTO non_member_invitations (id, meeting_id, attendant_email, accepted_dates_and_times, created_at, updated_at)
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

// GetNonMemberInvitation retrieves an anonymous invitation by ID.
func (r *NonMemberInvitationRepository) GetNonMemberInvitation(ctx context.Context, id string) (persistence.NonMemberInvitation, error) {
	if id == "" {
		return persistence.NonMemberInvitation{}, persistence.ErrNotFound
	}

	query := selectNonMemberInvitationColumns + ` WHERE id = ?`
	return r.scanNonMemberInvitation(r.helper.QueryRow(ctx, query, id))
}

// ListNonMemberInvitations returns all anonymous invitations.
func (r *NonMemberInvitationRepository) ListNonMemberInvitations(ctx context.Context) ([]persistence.NonMemberInvitation, error) {
	query := selectNonMemberInvitationColumns + ` ORDER BY created_at ASC, id ASC`
	return r.queryNonMemberInvitations(ctx, query)
}

// ListNonMemberInvitationsByMeeting returns all anonymous invitations
// referencing a meeting.
func (r *NonMemberInvitationRepository) ListNonMemberInvitationsByMeeting(ctx context.Context, meetingID string) ([]persistence.NonMemberInvitation, error) {
	if meetingID == "" {
		return nil, nil
	}
	query := selectNonMemberInvitationColumns + ` WHERE meeting_id = ? ORDER BY created_at ASC, id ASC`
	return r.queryNonMemberInvitations(ctx, query, meetingID)
}

// UpdateNonMemberInvitation applies a sparse update built from the non-nil
// patch fields.
func (r *NonMemberInvitationRepository) UpdateNonMemberInvitation(ctx context.Context, patch persistence.NonMemberInvitationPatch) error {
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

	query := "UPDATE non_member_invitations SET " + joinAssignments(assignments) + " WHERE id = ?"

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

// DeleteNonMemberInvitation removes an anonymous invitation by ID.
func (r *NonMemberInvitationRepository) DeleteNonMemberInvitation(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM non_member_invitations WHERE id = ?`, id)
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

// DeleteAllNonMemberInvitations clears the anonymous invitations table.
func (r *NonMemberInvitationRepository) DeleteAllNonMemberInvitations(ctx context.Context) error {
	if _, err := r.helper.Exec(ctx, `DELETE FROM non_member_invitations`); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

const selectNonMemberInvitationColumns = `
	SELECT id, meeting_id, attendant_email, accepted_dates_and_times, created_at, updated_at
	FROM non_member_invitations`

func (r *NonMemberInvitationRepository) queryNonMemberInvitations(ctx context.Context, query string, args ...any) ([]persistence.NonMemberInvitation, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var invitations []persistence.NonMemberInvitation
	for rows.Next() {
		var invitation persistence.NonMemberInvitation
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

func (r *NonMemberInvitationRepository) scanNonMemberInvitation(row *sql.Row) (persistence.NonMemberInvitation, error) {
	var invitation persistence.NonMemberInvitation
	var createdAt, updatedAt string

	err := row.Scan(&invitation.ID, &invitation.MeetingID, &invitation.AttendantEmail,
		&invitation.AcceptedDatesAndTimes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.NonMemberInvitation{}, persistence.ErrNotFound
		}
		return persistence.NonMemberInvitation{}, r.mapper.MapError(err)
	}

	if invitation.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.NonMemberInvitation{}, err
	}
	if invitation.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.NonMemberInvitation{}, err
	}

	return invitation, nil
}
