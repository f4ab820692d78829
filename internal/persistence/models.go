package persistence

import "time"

// User represents a registered member account.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Meeting represents a meeting proposed by a member.
//
// ProposedDatesAndTimes carries the serialized list of {startDate, endDate}
// ranges exactly as the application layer produced it; persistence never
// inspects the payload.
type Meeting struct {
	ID                    string
	MeetingName           string
	MeetingDescription    *string
	InitiatedBy           string
	ProposedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Invitation represents an attendee's response slot for a meeting.
type Invitation struct {
	ID                    string
	MeetingID             string
	AttendantEmail        string
	AcceptedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NonMemberMeeting mirrors Meeting for the anonymous flow. The organizer is
// identified by inline contact fields instead of a user reference.
type NonMemberMeeting struct {
	ID                    string
	MeetingName           string
	MeetingDescription    *string
	UserName              string
	UserEmail             string
	ProposedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NonMemberInvitation mirrors Invitation for the anonymous flow.
type NonMemberInvitation struct {
	ID                    string
	MeetingID             string
	AttendantEmail        string
	AcceptedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// UserPatch describes a sparse user update. Nil fields are left untouched; a
// non-nil pointer writes the column, including an explicit empty value.
type UserPatch struct {
	ID           string
	UserName     *string
	Email        *string
	PasswordHash *string
}

// HasChanges reports whether any updatable field is present.
func (p UserPatch) HasChanges() bool {
	return p.UserName != nil || p.Email != nil || p.PasswordHash != nil
}

// MeetingPatch describes a sparse meeting update.
type MeetingPatch struct {
	ID                    string
	MeetingName           *string
	MeetingDescription    *string
	InitiatedBy           *string
	ProposedDatesAndTimes *string
}

// HasChanges reports whether any updatable field is present.
func (p MeetingPatch) HasChanges() bool {
	return p.MeetingName != nil || p.MeetingDescription != nil ||
		p.InitiatedBy != nil || p.ProposedDatesAndTimes != nil
}

// InvitationPatch describes a sparse invitation update.
type InvitationPatch struct {
	ID                    string
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *string
}

// HasChanges reports whether any updatable field is present.
func (p InvitationPatch) HasChanges() bool {
	return p.MeetingID != nil || p.AttendantEmail != nil || p.AcceptedDatesAndTimes != nil
}

// NonMemberMeetingPatch describes a sparse non-member meeting update.
type NonMemberMeetingPatch struct {
	ID                    string
	MeetingName           *string
	MeetingDescription    *string
	UserName              *string
	UserEmail             *string
	ProposedDatesAndTimes *string
}

// HasChanges reports whether any updatable field is present.
func (p NonMemberMeetingPatch) HasChanges() bool {
	return p.MeetingName != nil || p.MeetingDescription != nil ||
		p.UserName != nil || p.UserEmail != nil || p.ProposedDatesAndTimes != nil
}

// NonMemberInvitationPatch describes a sparse non-member invitation update.
type NonMemberInvitationPatch struct {
	ID                    string
	MeetingID             *string
	AttendantEmail        *string
	AcceptedDatesAndTimes *string
}

// HasChanges reports whether any updatable field is present.
func (p NonMemberInvitationPatch) HasChanges() bool {
	return p.MeetingID != nil || p.AttendantEmail != nil || p.AcceptedDatesAndTimes != nil
}
