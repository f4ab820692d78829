package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/yamp/internal/persistence"
)

var (
	userCounter       uint64
	meetingCounter    uint64
	invitationCounter uint64
	sessionCounter    uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// RangesJSON is the serialized form of a single proposed or accepted range,
// matching what the application layer writes for one option.
func RangesJSON(start, end string) string {
	return fmt.Sprintf(`[{"startDate":%q,"endDate":%q}]`, start, end)
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record for persistence or
// application tests.
type UserFixture struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           id,
		UserName:     fmt.Sprintf("User %03d", idx),
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(f *UserFixture) {
		f.UserName = name
	}
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) {
		f.PasswordHash = hash
	}
}

// WithUserTimestamps sets both created and updated timestamps on the fixture.
func WithUserTimestamps(created, updated time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		UserName:     f.UserName,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ---------------------------- Meeting fixtures ----------------------------

// MeetingFixture represents a deterministic meeting record. The same fixture
// materialises as a member meeting or, with the organizer contact fields, as a
// non-member meeting.
type MeetingFixture struct {
	ID                    string
	MeetingName           string
	MeetingDescription    *string
	InitiatedBy           string
	UserName              string
	UserEmail             string
	ProposedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// MeetingOption configures the generated meeting fixture.
type MeetingOption func(*MeetingFixture)

// NewMeetingFixture returns a deterministic meeting fixture with optional overrides.
func NewMeetingFixture(opts ...MeetingOption) MeetingFixture {
	idx := atomic.AddUint64(&meetingCounter, 1)
	id := fmt.Sprintf("meeting-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := MeetingFixture{
		ID:                    id,
		MeetingName:           fmt.Sprintf("Meeting %03d", idx),
		InitiatedBy:           fmt.Sprintf("user-%03d", idx),
		UserName:              fmt.Sprintf("Organizer %03d", idx),
		UserEmail:             fmt.Sprintf("organizer-%03d@example.com", idx),
		ProposedDatesAndTimes: RangesJSON("2024-02-01T09:00", "2024-02-01T10:00"),
		CreatedAt:             created,
		UpdatedAt:             created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMeetingID overrides the generated meeting ID.
func WithMeetingID(id string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ID = id
	}
}

// WithMeetingName overrides the generated meeting name.
func WithMeetingName(name string) MeetingOption {
	return func(f *MeetingFixture) {
		f.MeetingName = name
	}
}

// WithMeetingDescription sets the optional description.
func WithMeetingDescription(description string) MeetingOption {
	return func(f *MeetingFixture) {
		value := description
		f.MeetingDescription = &value
	}
}

// WithoutMeetingDescription clears any description on the fixture.
func WithoutMeetingDescription() MeetingOption {
	return func(f *MeetingFixture) {
		f.MeetingDescription = nil
	}
}

// WithMeetingInitiator sets the initiating user ID.
func WithMeetingInitiator(userID string) MeetingOption {
	return func(f *MeetingFixture) {
		f.InitiatedBy = userID
	}
}

// WithMeetingOrganizer sets the inline organizer contact used by the
// non-member materialisation.
func WithMeetingOrganizer(name, email string) MeetingOption {
	return func(f *MeetingFixture) {
		f.UserName = name
		f.UserEmail = email
	}
}

// WithMeetingProposedRanges sets the serialized proposed ranges payload.
func WithMeetingProposedRanges(payload string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ProposedDatesAndTimes = payload
	}
}

// WithMeetingTimestamps sets both created and updated timestamps.
func WithMeetingTimestamps(created, updated time.Time) MeetingOption {
	return func(f *MeetingFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.Meeting value.
func (f MeetingFixture) Persistence() persistence.Meeting {
	return persistence.Meeting{
		ID:                    f.ID,
		MeetingName:           f.MeetingName,
		MeetingDescription:    copyStringPtr(f.MeetingDescription),
		InitiatedBy:           f.InitiatedBy,
		ProposedDatesAndTimes: f.ProposedDatesAndTimes,
		CreatedAt:             f.CreatedAt,
		UpdatedAt:             f.UpdatedAt,
	}
}

// NonMember returns the fixture as a persistence.NonMemberMeeting value.
func (f MeetingFixture) NonMember() persistence.NonMemberMeeting {
	return persistence.NonMemberMeeting{
		ID:                    f.ID,
		MeetingName:           f.MeetingName,
		MeetingDescription:    copyStringPtr(f.MeetingDescription),
		UserName:              f.UserName,
		UserEmail:             f.UserEmail,
		ProposedDatesAndTimes: f.ProposedDatesAndTimes,
		CreatedAt:             f.CreatedAt,
		UpdatedAt:             f.UpdatedAt,
	}
}

// --------------------------- Invitation fixtures --------------------------

// InvitationFixture represents a deterministic invitation record.
type InvitationFixture struct {
	ID                    string
	MeetingID             string
	AttendantEmail        string
	AcceptedDatesAndTimes string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// InvitationOption configures the generated invitation fixture.
type InvitationOption func(*InvitationFixture)

// NewInvitationFixture returns a deterministic invitation fixture with optional overrides.
func NewInvitationFixture(opts ...InvitationOption) InvitationFixture {
	idx := atomic.AddUint64(&invitationCounter, 1)
	id := fmt.Sprintf("invitation-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := InvitationFixture{
		ID:                    id,
		MeetingID:             fmt.Sprintf("meeting-%03d", idx),
		AttendantEmail:        fmt.Sprintf("attendant-%03d@example.com", idx),
		AcceptedDatesAndTimes: RangesJSON("2024-02-01T09:00", "2024-02-01T10:00"),
		CreatedAt:             created,
		UpdatedAt:             created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithInvitationID overrides the generated invitation ID.
func WithInvitationID(id string) InvitationOption {
	return func(f *InvitationFixture) {
		f.ID = id
	}
}

// WithInvitationMeetingID sets the referenced meeting ID.
func WithInvitationMeetingID(id string) InvitationOption {
	return func(f *InvitationFixture) {
		f.MeetingID = id
	}
}

// WithInvitationAttendant sets the attendant email.
func WithInvitationAttendant(email string) InvitationOption {
	return func(f *InvitationFixture) {
		f.AttendantEmail = email
	}
}

// WithInvitationAcceptedRanges sets the serialized accepted ranges payload.
func WithInvitationAcceptedRanges(payload string) InvitationOption {
	return func(f *InvitationFixture) {
		f.AcceptedDatesAndTimes = payload
	}
}

// WithInvitationTimestamps sets both created and updated timestamps.
func WithInvitationTimestamps(created, updated time.Time) InvitationOption {
	return func(f *InvitationFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.Invitation value.
func (f InvitationFixture) Persistence() persistence.Invitation {
	return persistence.Invitation{
		ID:                    f.ID,
		MeetingID:             f.MeetingID,
		AttendantEmail:        f.AttendantEmail,
		AcceptedDatesAndTimes: f.AcceptedDatesAndTimes,
		CreatedAt:             f.CreatedAt,
		UpdatedAt:             f.UpdatedAt,
	}
}

// NonMember returns the fixture as a persistence.NonMemberInvitation value.
func (f InvitationFixture) NonMember() persistence.NonMemberInvitation {
	return persistence.NonMemberInvitation{
		ID:                    f.ID,
		MeetingID:             f.MeetingID,
		AttendantEmail:        f.AttendantEmail,
		AcceptedDatesAndTimes: f.AcceptedDatesAndTimes,
		CreatedAt:             f.CreatedAt,
		UpdatedAt:             f.UpdatedAt,
	}
}

// ----------------------------- Session fixtures -------------------------

// SessionFixture represents a deterministic session record.
type SessionFixture struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// SessionOption configures the generated session fixture.
type SessionOption func(*SessionFixture)

// NewSessionFixture returns a deterministic session fixture with optional overrides.
func NewSessionFixture(opts ...SessionOption) SessionFixture {
	idx := atomic.AddUint64(&sessionCounter, 1)
	id := fmt.Sprintf("session-%03d", idx)
	created := referenceTime
	fixture := SessionFixture{
		ID:        id,
		UserID:    fmt.Sprintf("user-%03d", idx),
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: created.Add(24 * time.Hour),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionID overrides the session ID.
func WithSessionID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.ID = id
	}
}

// WithSessionUserID sets the user ID.
func WithSessionUserID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.UserID = id
	}
}

// WithSessionToken overrides the token value.
func WithSessionToken(token string) SessionOption {
	return func(f *SessionFixture) {
		f.Token = token
	}
}

// WithSessionExpiresAt sets the expiration timestamp.
func WithSessionExpiresAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		f.ExpiresAt = t
	}
}

// WithSessionRevokedAt sets the optional revoked timestamp.
func WithSessionRevokedAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		revoked := t
		f.RevokedAt = &revoked
	}
}

// WithSessionTimestamps sets both created and updated timestamps.
func WithSessionTimestamps(created, updated time.Time) SessionOption {
	return func(f *SessionFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.Session value.
func (f SessionFixture) Persistence() persistence.Session {
	var revoked *time.Time
	if f.RevokedAt != nil {
		t := *f.RevokedAt
		revoked = &t
	}
	return persistence.Session{
		ID:        f.ID,
		UserID:    f.UserID,
		Token:     f.Token,
		ExpiresAt: f.ExpiresAt,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		RevokedAt: revoked,
	}
}

// helper to deep copy optional strings.
func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
