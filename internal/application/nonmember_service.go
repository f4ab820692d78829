package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// NonMemberMeetingService manages the anonymous meeting flow. No referential
// validation is applied on this path; the anonymous flow carries no
// authenticated identity to validate against.
type NonMemberMeetingService struct {
	meetings    persistence.NonMemberMeetingRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewNonMemberMeetingService wires dependencies for the anonymous meeting service.
func NewNonMemberMeetingService(meetings persistence.NonMemberMeetingRepository, idGenerator func() string, now func() time.Time) *NonMemberMeetingService {
	return NewNonMemberMeetingServiceWithLogger(meetings, idGenerator, now, nil)
}

// NewNonMemberMeetingServiceWithLogger constructs a NonMemberMeetingService with a specified logger.
func NewNonMemberMeetingServiceWithLogger(meetings persistence.NonMemberMeetingRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *NonMemberMeetingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &NonMemberMeetingService{
		meetings:    meetings,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Create persists an anonymous meeting and returns its generated identity.
func (s *NonMemberMeetingService) Create(ctx context.Context, input CreateNonMemberMeetingInput) (string, error) {
	if s == nil {
		return "", fmt.Errorf("NonMemberMeetingService is nil")
	}

	proposed := ""
	if input.ProposedDatesAndTimes != nil {
		encoded, err := encodeTimeRanges(*input.ProposedDatesAndTimes)
		if err != nil {
			return "", fmt.Errorf("failed to serialize proposed ranges: %w", err)
		}
		proposed = encoded
	}

	now := s.now()
	record := persistence.NonMemberMeeting{
		ID:                    s.idGenerator(),
		MeetingName:           stringValue(input.MeetingName),
		MeetingDescription:    input.MeetingDescription,
		UserName:              stringValue(input.UserName),
		UserEmail:             stringValue(input.UserEmail),
		ProposedDatesAndTimes: proposed,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.meetings.CreateNonMemberMeeting(ctx, record); err != nil {
		return "", err
	}

	serviceLogger(ctx, s.logger, "NonMemberMeetingService", "Create", "meeting_id", record.ID).
		InfoContext(ctx, "non-member meeting created")
	return record.ID, nil
}

// GetByID returns the anonymous meeting with the given identity.
func (s *NonMemberMeetingService) GetByID(ctx context.Context, id string) (NonMemberMeeting, error) {
	if s == nil {
		return NonMemberMeeting{}, fmt.Errorf("NonMemberMeetingService is nil")
	}

	record, err := s.meetings.GetNonMemberMeeting(ctx, id)
	if err != nil {
		return NonMemberMeeting{}, err
	}
	return nonMemberMeetingFromRecord(record), nil
}

// GetAll returns every anonymous meeting.
func (s *NonMemberMeetingService) GetAll(ctx context.Context) ([]NonMemberMeeting, error) {
	if s == nil {
		return nil, fmt.Errorf("NonMemberMeetingService is nil")
	}

	records, err := s.meetings.ListNonMemberMeetings(ctx)
	if err != nil {
		return nil, err
	}

	meetings := make([]NonMemberMeeting, 0, len(records))
	for _, record := range records {
		meetings = append(meetings, nonMemberMeetingFromRecord(record))
	}
	return meetings, nil
}

// Update applies a sparse anonymous meeting update.
func (s *NonMemberMeetingService) Update(ctx context.Context, input UpdateNonMemberMeetingInput) error {
	if s == nil {
		return fmt.Errorf("NonMemberMeetingService is nil")
	}

	patch := persistence.NonMemberMeetingPatch{
		ID:                 input.MeetingID,
		MeetingName:        input.MeetingName,
		MeetingDescription: input.MeetingDescription,
		UserName:           input.UserName,
		UserEmail:          input.UserEmail,
	}
	if input.ProposedDatesAndTimes != nil {
		proposed, err := encodeTimeRanges(*input.ProposedDatesAndTimes)
		if err != nil {
			return fmt.Errorf("failed to serialize proposed ranges: %w", err)
		}
		patch.ProposedDatesAndTimes = &proposed
	}

	return s.meetings.UpdateNonMemberMeeting(ctx, patch)
}

// DeleteOne removes an anonymous meeting and its invitations.
func (s *NonMemberMeetingService) DeleteOne(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("NonMemberMeetingService is nil")
	}
	return s.meetings.DeleteNonMemberMeeting(ctx, id)
}

// DeleteAll wipes anonymous meetings and invitations.
func (s *NonMemberMeetingService) DeleteAll(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("NonMemberMeetingService is nil")
	}
	return s.meetings.DeleteAllNonMemberMeetings(ctx)
}

// NonMemberInvitationService manages the anonymous invitation flow.
type NonMemberInvitationService struct {
	invitations persistence.NonMemberInvitationRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewNonMemberInvitationService wires dependencies for the anonymous invitation service.
func NewNonMemberInvitationService(invitations persistence.NonMemberInvitationRepository, idGenerator func() string, now func() time.Time) *NonMemberInvitationService {
	return NewNonMemberInvitationServiceWithLogger(invitations, idGenerator, now, nil)
}

// NewNonMemberInvitationServiceWithLogger constructs a NonMemberInvitationService with a specified logger.
func NewNonMemberInvitationServiceWithLogger(invitations persistence.NonMemberInvitationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *NonMemberInvitationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &NonMemberInvitationService{
		invitations: invitations,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Create persists an anonymous invitation and returns the created record so
// the caller can trigger the notification side effect.
func (s *NonMemberInvitationService) Create(ctx context.Context, input CreateNonMemberInvitationInput) (NonMemberInvitation, error) {
	if s == nil {
		return NonMemberInvitation{}, fmt.Errorf("NonMemberInvitationService is nil")
	}

	accepted := ""
	if input.AcceptedDatesAndTimes != nil {
		encoded, err := encodeTimeRanges(*input.AcceptedDatesAndTimes)
		if err != nil {
			return NonMemberInvitation{}, fmt.Errorf("failed to serialize accepted ranges: %w", err)
		}
		accepted = encoded
	}

	now := s.now()
	record := persistence.NonMemberInvitation{
		ID:                    s.idGenerator(),
		MeetingID:             stringValue(input.MeetingID),
		AttendantEmail:        stringValue(input.AttendantEmail),
		AcceptedDatesAndTimes: accepted,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.invitations.CreateNonMemberInvitation(ctx, record); err != nil {
		return NonMemberInvitation{}, err
	}

	serviceLogger(ctx, s.logger, "NonMemberInvitationService", "Create", "invitation_id", record.ID).
		InfoContext(ctx, "non-member invitation created")
	return nonMemberInvitationFromRecord(record), nil
}

// GetByID returns the anonymous invitation with the given identity.
func (s *NonMemberInvitationService) GetByID(ctx context.Context, id string) (NonMemberInvitation, error) {
	if s == nil {
		return NonMemberInvitation{}, fmt.Errorf("NonMemberInvitationService is nil")
	}

	record, err := s.invitations.GetNonMemberInvitation(ctx, id)
	if err != nil {
		return NonMemberInvitation{}, err
	}
	return nonMemberInvitationFromRecord(record), nil
}

// GetAll returns every anonymous invitation.
func (s *NonMemberInvitationService) GetAll(ctx context.Context) ([]NonMemberInvitation, error) {
	if s == nil {
		return nil, fmt.Errorf("NonMemberInvitationService is nil")
	}

	records, err := s.invitations.ListNonMemberInvitations(ctx)
	if err != nil {
		return nil, err
	}
	return nonMemberInvitationsFromRecords(records), nil
}

// GetAllByMeetingID returns the anonymous invitations referencing a meeting.
func (s *NonMemberInvitationService) GetAllByMeetingID(ctx context.Context, meetingID string) ([]NonMemberInvitation, error) {
	if s == nil {
		return nil, fmt.Errorf("NonMemberInvitationService is nil")
	}

	records, err := s.invitations.ListNonMemberInvitationsByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return nonMemberInvitationsFromRecords(records), nil
}

// Update applies a sparse anonymous invitation update.
func (s *NonMemberInvitationService) Update(ctx context.Context, input UpdateNonMemberInvitationInput) error {
	if s == nil {
		return fmt.Errorf("NonMemberInvitationService is nil")
	}

	patch := persistence.NonMemberInvitationPatch{
		ID:             input.InvitationID,
		MeetingID:      input.MeetingID,
		AttendantEmail: input.AttendantEmail,
	}
	if input.AcceptedDatesAndTimes != nil {
		accepted, err := encodeTimeRanges(*input.AcceptedDatesAndTimes)
		if err != nil {
			return fmt.Errorf("failed to serialize accepted ranges: %w", err)
		}
		patch.AcceptedDatesAndTimes = &accepted
	}

	return s.invitations.UpdateNonMemberInvitation(ctx, patch)
}

// DeleteOne removes an anonymous invitation.
func (s *NonMemberInvitationService) DeleteOne(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("NonMemberInvitationService is nil")
	}
	return s.invitations.DeleteNonMemberInvitation(ctx, id)
}

// DeleteAll wipes the anonymous invitations table.
func (s *NonMemberInvitationService) DeleteAll(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("NonMemberInvitationService is nil")
	}
	return s.invitations.DeleteAllNonMemberInvitations(ctx)
}

func nonMemberInvitationsFromRecords(records []persistence.NonMemberInvitation) []NonMemberInvitation {
	invitations := make([]NonMemberInvitation, 0, len(records))
	for _, record := range records {
		invitations = append(invitations, nonMemberInvitationFromRecord(record))
	}
	return invitations
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
