package application

import (
	"encoding/json"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// TimeRange is one proposed or accepted date/time option. Start and end are
// carried as opaque strings and never interpreted or conflict-checked.
type TimeRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// User is the service-level view of a member account. It never carries the
// password hash.
type User struct {
	ID        string
	UserName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meeting is the service-level view of a member meeting, with its proposed
// ranges deserialized.
type Meeting struct {
	ID                    string
	MeetingName           string
	MeetingDescription    *string
	InitiatedBy           string
	ProposedDatesAndTimes []TimeRange
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Invitation is the service-level view of a member invitation.
type Invitation struct {
	ID                    string
	MeetingID             string
	AttendantEmail        string
	AcceptedDatesAndTimes []TimeRange
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NonMemberMeeting is the service-level view of an anonymous meeting.
type NonMemberMeeting struct {
	ID                    string
	MeetingName           string
	MeetingDescription    *string
	UserName              string
	UserEmail             string
	ProposedDatesAndTimes []TimeRange
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NonMemberInvitation is the service-level view of an anonymous invitation.
type NonMemberInvitation struct {
	ID                    string
	MeetingID             string
	AttendantEmail        string
	AcceptedDatesAndTimes []TimeRange
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// Principal identifies the authenticated user attached to a request.
type Principal struct {
	UserID string
}

// CreateUserInput captures caller-provided registration fields. Nil pointers
// mean the field was absent from the request body.
type CreateUserInput struct {
	UserName *string
	Email    *string
	Password *string
}

// UpdateUserInput captures a sparse profile update. Nil pointers leave the
// field untouched.
type UpdateUserInput struct {
	UserID   string
	UserName *string
	Email    *string
	Password *string
}

// UpdateUserResult carries the refreshed user and an optional confirmation
// message (set when the password changed).
type UpdateUserResult struct {
	User    User
	Message string
}

// CreateMeetingInput captures caller-provided meeting fields.
type CreateMeetingInput struct {
	MeetingName           *string
	MeetingDescription    *string
	InitiatedBy           *string
	ProposedDatesAndTimes *[]TimeRange
}

// UpdateMeetingInput captures a sparse meeting update.
type UpdateMeetingInput struct {
	MeetingID             string
	MeetingName           *string
	MeetingDescription    *string
	InitiatedBy           *string
	ProposedDatesAndTimes *[]TimeRange
}

// CreateInvitationInput captures caller-provided invitation fields.
type CreateInvitationInput struct {
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *[]TimeRange
}

// UpdateInvitationInput captures a sparse invitation update.
type UpdateInvitationInput struct {
	InvitationID          string
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *[]TimeRange
}

// CreateNonMemberMeetingInput captures anonymous meeting fields. No
// referential validation is applied on this path.
type CreateNonMemberMeetingInput struct {
	MeetingName           *string
	MeetingDescription    *string
	UserName              *string
	UserEmail             *string
	ProposedDatesAndTimes *[]TimeRange
}

// UpdateNonMemberMeetingInput captures a sparse anonymous meeting update.
type UpdateNonMemberMeetingInput struct {
	MeetingID             string
	MeetingName           *string
	MeetingDescription    *string
	UserName              *string
	UserEmail             *string
	ProposedDatesAndTimes *[]TimeRange
}

// CreateNonMemberInvitationInput captures anonymous invitation fields.
type CreateNonMemberInvitationInput struct {
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *[]TimeRange
}

// UpdateNonMemberInvitationInput captures a sparse anonymous invitation update.
type UpdateNonMemberInvitationInput struct {
	InvitationID          string
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *[]TimeRange
}

// LoginParams captures the data required to authenticate a user.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult captures the outcome of a successful login.
type LoginResult struct {
	User    User
	Session Session
}

// encodeTimeRanges serializes ranges to the JSON text stored by persistence.
// A nil slice serializes as an empty list.
func encodeTimeRanges(ranges []TimeRange) (string, error) {
	if ranges == nil {
		ranges = []TimeRange{}
	}
	data, err := json.Marshal(ranges)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeTimeRanges parses the stored JSON text back into ranges. Malformed or
// empty text yields nil rather than an error; the payload is opaque and was
// never validated on the way in.
func decodeTimeRanges(value string) []TimeRange {
	if value == "" {
		return nil
	}
	var ranges []TimeRange
	if err := json.Unmarshal([]byte(value), &ranges); err != nil {
		return nil
	}
	return ranges
}

func userFromRecord(record persistence.User) User {
	return User{
		ID:        record.ID,
		UserName:  record.UserName,
		Email:     record.Email,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func meetingFromRecord(record persistence.Meeting) Meeting {
	return Meeting{
		ID:                    record.ID,
		MeetingName:           record.MeetingName,
		MeetingDescription:    record.MeetingDescription,
		InitiatedBy:           record.InitiatedBy,
		ProposedDatesAndTimes: decodeTimeRanges(record.ProposedDatesAndTimes),
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func invitationFromRecord(record persistence.Invitation) Invitation {
	return Invitation{
		ID:                    record.ID,
		MeetingID:             record.MeetingID,
		AttendantEmail:        record.AttendantEmail,
		AcceptedDatesAndTimes: decodeTimeRanges(record.AcceptedDatesAndTimes),
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func nonMemberMeetingFromRecord(record persistence.NonMemberMeeting) NonMemberMeeting {
	return NonMemberMeeting{
		ID:                    record.ID,
		MeetingName:           record.MeetingName,
		MeetingDescription:    record.MeetingDescription,
		UserName:              record.UserName,
		UserEmail:             record.UserEmail,
		ProposedDatesAndTimes: decodeTimeRanges(record.ProposedDatesAndTimes),
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func nonMemberInvitationFromRecord(record persistence.NonMemberInvitation) NonMemberInvitation {
	return NonMemberInvitation{
		ID:                    record.ID,
		MeetingID:             record.MeetingID,
		AttendantEmail:        record.AttendantEmail,
		AcceptedDatesAndTimes: decodeTimeRanges(record.AcceptedDatesAndTimes),
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func sessionFromRecord(record persistence.Session) Session {
	return Session{
		ID:        record.ID,
		UserID:    record.UserID,
		Token:     record.Token,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		RevokedAt: record.RevokedAt,
	}
}
