package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// MeetingService enforces referential validation for meetings and orchestrates
// their lifecycle.
type MeetingService struct {
	meetings    persistence.MeetingRepository
	users       persistence.UserRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMeetingService wires dependencies for the meeting service.
func NewMeetingService(meetings persistence.MeetingRepository, users persistence.UserRepository, idGenerator func() string, now func() time.Time) *MeetingService {
	return NewMeetingServiceWithLogger(meetings, users, idGenerator, now, nil)
}

// NewMeetingServiceWithLogger constructs a MeetingService with a specified logger.
func NewMeetingServiceWithLogger(meetings persistence.MeetingRepository, users persistence.UserRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MeetingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MeetingService{
		meetings:    meetings,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *MeetingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MeetingService", operation, attrs...)
}

// Create validates the input, checks that initiatedBy names an existing user,
// and persists the meeting. The freshly read-back record is returned.
func (s *MeetingService) Create(ctx context.Context, input CreateMeetingInput) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}

	if input.MeetingName == nil {
		return Meeting{}, invalidInput("meetingName is not defined!")
	}
	if input.InitiatedBy == nil {
		return Meeting{}, invalidInput("initiatedBy is not defined!")
	}
	if input.ProposedDatesAndTimes == nil {
		return Meeting{}, invalidInput("proposedDatesAndTimes is not defined!")
	}

	if err := s.validateInitiator(ctx, *input.InitiatedBy); err != nil {
		return Meeting{}, err
	}

	proposed, err := encodeTimeRanges(*input.ProposedDatesAndTimes)
	if err != nil {
		return Meeting{}, fmt.Errorf("failed to serialize proposed ranges: %w", err)
	}

	now := s.now()
	record := persistence.Meeting{
		ID:                    s.idGenerator(),
		MeetingName:           *input.MeetingName,
		MeetingDescription:    input.MeetingDescription,
		InitiatedBy:           *input.InitiatedBy,
		ProposedDatesAndTimes: proposed,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.meetings.CreateMeeting(ctx, record); err != nil {
		return Meeting{}, err
	}

	persisted, err := s.meetings.GetMeeting(ctx, record.ID)
	if err != nil {
		return Meeting{}, err
	}

	s.loggerWith(ctx, "Create", "meeting_id", persisted.ID).InfoContext(ctx, "meeting created")
	return meetingFromRecord(persisted), nil
}

// GetByID returns the meeting with the given identity.
func (s *MeetingService) GetByID(ctx context.Context, id string) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}

	record, err := s.meetings.GetMeeting(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, err
	}

	return meetingFromRecord(record), nil
}

// GetAll returns every meeting.
func (s *MeetingService) GetAll(ctx context.Context) ([]Meeting, error) {
	if s == nil {
		return nil, fmt.Errorf("MeetingService is nil")
	}

	records, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	return meetingsFromRecords(records), nil
}

// GetAllByUserID returns the meetings initiated by the given user.
func (s *MeetingService) GetAllByUserID(ctx context.Context, userID string) ([]Meeting, error) {
	if s == nil {
		return nil, fmt.Errorf("MeetingService is nil")
	}

	records, err := s.meetings.ListMeetingsByInitiator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return meetingsFromRecords(records), nil
}

// Update applies a sparse meeting update. A present initiatedBy is
// re-validated against users; at least one field must be present.
func (s *MeetingService) Update(ctx context.Context, input UpdateMeetingInput) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}

	if input.MeetingName == nil && input.MeetingDescription == nil &&
		input.InitiatedBy == nil && input.ProposedDatesAndTimes == nil {
		return Meeting{}, invalidInput("Invalid input!")
	}

	if input.InitiatedBy != nil {
		if err := s.validateInitiator(ctx, *input.InitiatedBy); err != nil {
			return Meeting{}, err
		}
	}

	if _, err := s.meetings.GetMeeting(ctx, input.MeetingID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, err
	}

	patch := persistence.MeetingPatch{
		ID:                 input.MeetingID,
		MeetingName:        input.MeetingName,
		MeetingDescription: input.MeetingDescription,
		InitiatedBy:        input.InitiatedBy,
	}
	if input.ProposedDatesAndTimes != nil {
		proposed, err := encodeTimeRanges(*input.ProposedDatesAndTimes)
		if err != nil {
			return Meeting{}, fmt.Errorf("failed to serialize proposed ranges: %w", err)
		}
		patch.ProposedDatesAndTimes = &proposed
	}

	if err := s.meetings.UpdateMeeting(ctx, patch); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, err
	}

	persisted, err := s.meetings.GetMeeting(ctx, input.MeetingID)
	if err != nil {
		return Meeting{}, err
	}

	s.loggerWith(ctx, "Update", "meeting_id", input.MeetingID).InfoContext(ctx, "meeting updated")
	return meetingFromRecord(persisted), nil
}

// DeleteOne removes a meeting and every invitation referencing it.
func (s *MeetingService) DeleteOne(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("MeetingService is nil")
	}

	if err := s.meetings.DeleteMeeting(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		s.loggerWith(ctx, "DeleteOne", "meeting_id", id).ErrorContext(ctx, "failed to delete meeting", "error", err)
		return err
	}

	s.loggerWith(ctx, "DeleteOne", "meeting_id", id).InfoContext(ctx, "meeting deleted")
	return nil
}

// DeleteAll wipes meetings and their invitations.
func (s *MeetingService) DeleteAll(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("MeetingService is nil")
	}

	if err := s.meetings.DeleteAllMeetings(ctx); err != nil {
		s.loggerWith(ctx, "DeleteAll").ErrorContext(ctx, "failed to delete all meetings", "error", err)
		return err
	}

	s.loggerWith(ctx, "DeleteAll").InfoContext(ctx, "all meetings deleted")
	return nil
}

func (s *MeetingService) validateInitiator(ctx context.Context, userID string) error {
	_, err := s.users.GetUser(ctx, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return invalidInput("invalid initiatedBy!")
	}
	return err
}

func meetingsFromRecords(records []persistence.Meeting) []Meeting {
	meetings := make([]Meeting, 0, len(records))
	for _, record := range records {
		meetings = append(meetings, meetingFromRecord(record))
	}
	return meetings
}
