package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// InvitationService enforces referential validation for invitations.
type InvitationService struct {
	invitations persistence.InvitationRepository
	meetings    persistence.MeetingRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewInvitationService wires dependencies for the invitation service.
func NewInvitationService(invitations persistence.InvitationRepository, meetings persistence.MeetingRepository, idGenerator func() string, now func() time.Time) *InvitationService {
	return NewInvitationServiceWithLogger(invitations, meetings, idGenerator, now, nil)
}

// NewInvitationServiceWithLogger constructs an InvitationService with a specified logger.
func NewInvitationServiceWithLogger(invitations persistence.InvitationRepository, meetings persistence.MeetingRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *InvitationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &InvitationService{
		invitations: invitations,
		meetings:    meetings,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *InvitationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "InvitationService", operation, attrs...)
}

// Create validates the input, checks that meetingId names an existing meeting,
// and persists the invitation.
func (s *InvitationService) Create(ctx context.Context, input CreateInvitationInput) (Invitation, error) {
	if s == nil {
		return Invitation{}, fmt.Errorf("InvitationService is nil")
	}

	if input.MeetingID == nil {
		return Invitation{}, invalidInput("meetingId is not defined!")
	}
	if input.AttendantEmail == nil {
		return Invitation{}, invalidInput("attendantEmail is not defined!")
	}
	if input.AcceptedDatesAndTimes == nil {
		return Invitation{}, invalidInput("acceptedDatesAndTimes is not defined!")
	}

	if err := s.validateMeeting(ctx, *input.MeetingID); err != nil {
		return Invitation{}, err
	}

	accepted, err := encodeTimeRanges(*input.AcceptedDatesAndTimes)
	if err != nil {
		return Invitation{}, fmt.Errorf("failed to serialize accepted ranges: %w", err)
	}

	now := s.now()
	record := persistence.Invitation{
		ID:                    s.idGenerator(),
		MeetingID:             *input.MeetingID,
		AttendantEmail:        *input.AttendantEmail,
		AcceptedDatesAndTimes: accepted,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.invitations.CreateInvitation(ctx, record); err != nil {
		return Invitation{}, err
	}

	persisted, err := s.invitations.GetInvitation(ctx, record.ID)
	if err != nil {
		return Invitation{}, err
	}

	s.loggerWith(ctx, "Create", "invitation_id", persisted.ID).InfoContext(ctx, "invitation created")
	return invitationFromRecord(persisted), nil
}

// GetByID returns the invitation with the given identity.
func (s *InvitationService) GetByID(ctx context.Context, id string) (Invitation, error) {
	if s == nil {
		return Invitation{}, fmt.Errorf("InvitationService is nil")
	}

	record, err := s.invitations.GetInvitation(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, err
	}

	return invitationFromRecord(record), nil
}

// GetAll returns every invitation.
func (s *InvitationService) GetAll(ctx context.Context) ([]Invitation, error) {
	if s == nil {
		return nil, fmt.Errorf("InvitationService is nil")
	}

	records, err := s.invitations.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}
	return invitationsFromRecords(records), nil
}

// GetAllByMeetingID returns the invitations referencing the given meeting.
func (s *InvitationService) GetAllByMeetingID(ctx context.Context, meetingID string) ([]Invitation, error) {
	if s == nil {
		return nil, fmt.Errorf("InvitationService is nil")
	}

	records, err := s.invitations.ListInvitationsByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return invitationsFromRecords(records), nil
}

// Update applies a sparse invitation update. A present meetingId is
// re-validated; at least one field must be present.
func (s *InvitationService) Update(ctx context.Context, input UpdateInvitationInput) (Invitation, error) {
	if s == nil {
		return Invitation{}, fmt.Errorf("InvitationService is nil")
	}

	if input.MeetingID == nil && input.AttendantEmail == nil && input.AcceptedDatesAndTimes == nil {
		return Invitation{}, invalidInput("Invalid input!")
	}

	if input.MeetingID != nil {
		if err := s.validateMeeting(ctx, *input.MeetingID); err != nil {
			return Invitation{}, err
		}
	}

	if _, err := s.invitations.GetInvitation(ctx, input.InvitationID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, err
	}

	patch := persistence.InvitationPatch{
		ID:             input.InvitationID,
		MeetingID:      input.MeetingID,
		AttendantEmail: input.AttendantEmail,
	}
	if input.AcceptedDatesAndTimes != nil {
		accepted, err := encodeTimeRanges(*input.AcceptedDatesAndTimes)
		if err != nil {
			return Invitation{}, fmt.Errorf("failed to serialize accepted ranges: %w", err)
		}
		patch.AcceptedDatesAndTimes = &accepted
	}

	if err := s.invitations.UpdateInvitation(ctx, patch); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, err
	}

	persisted, err := s.invitations.GetInvitation(ctx, input.InvitationID)
	if err != nil {
		return Invitation{}, err
	}

	s.loggerWith(ctx, "Update", "invitation_id", input.InvitationID).InfoContext(ctx, "invitation updated")
	return invitationFromRecord(persisted), nil
}

// DeleteOne removes an invitation after confirming it exists.
func (s *InvitationService) DeleteOne(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("InvitationService is nil")
	}

	if _, err := s.invitations.GetInvitation(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.invitations.DeleteInvitation(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		s.loggerWith(ctx, "DeleteOne", "invitation_id", id).ErrorContext(ctx, "failed to delete invitation", "error", err)
		return err
	}

	s.loggerWith(ctx, "DeleteOne", "invitation_id", id).InfoContext(ctx, "invitation deleted")
	return nil
}

// DeleteAllByMeetingID removes every invitation referencing a meeting.
func (s *InvitationService) DeleteAllByMeetingID(ctx context.Context, meetingID string) error {
	if s == nil {
		return fmt.Errorf("InvitationService is nil")
	}
	return s.invitations.DeleteInvitationsByMeeting(ctx, meetingID)
}

// DeleteAll wipes the invitations table.
func (s *InvitationService) DeleteAll(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("InvitationService is nil")
	}
	return s.invitations.DeleteAllInvitations(ctx)
}

func (s *InvitationService) validateMeeting(ctx context.Context, meetingID string) error {
	_, err := s.meetings.GetMeeting(ctx, meetingID)
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return invalidInput("invalid meetingId!")
	}
	return err
}

func invitationsFromRecords(records []persistence.Invitation) []Invitation {
	invitations := make([]Invitation, 0, len(records))
	for _, record := range records {
		invitations = append(invitations, invitationFromRecord(record))
	}
	return invitations
}
