package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for member accounts.
//
// DeleteUser removes the user together with every meeting the user initiated
// and every invitation attached to those meetings, in a single transaction.
// DeleteAllUsers clears users, meetings, and invitations the same way.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, patch UserPatch) error
	DeleteUser(ctx context.Context, id string) error
	DeleteAllUsers(ctx context.Context) error
}

// MeetingRepository exposes CRUD operations for member meetings.
//
// DeleteMeeting removes the meeting and its invitations in one transaction;
// DeleteAllMeetings clears meetings and invitations the same way.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	ListMeetingsByInitiator(ctx context.Context, userID string) ([]Meeting, error)
	UpdateMeeting(ctx context.Context, patch MeetingPatch) error
	DeleteMeeting(ctx context.Context, id string) error
	DeleteAllMeetings(ctx context.Context) error
}

// InvitationRepository exposes CRUD operations for member invitations.
type InvitationRepository interface {
	CreateInvitation(ctx context.Context, invitation Invitation) error
	GetInvitation(ctx context.Context, id string) (Invitation, error)
	ListInvitations(ctx context.Context) ([]Invitation, error)
	ListInvitationsByMeeting(ctx context.Context, meetingID string) ([]Invitation, error)
	UpdateInvitation(ctx context.Context, patch InvitationPatch) error
	DeleteInvitation(ctx context.Context, id string) error
	DeleteInvitationsByMeeting(ctx context.Context, meetingID string) error
	DeleteAllInvitations(ctx context.Context) error
}

// NonMemberMeetingRepository exposes CRUD operations for anonymous meetings.
//
// DeleteNonMemberMeeting cascades the meeting's invitations in the same
// transaction; DeleteAllNonMemberMeetings clears both tables.
type NonMemberMeetingRepository interface {
	CreateNonMemberMeeting(ctx context.Context, meeting NonMemberMeeting) error
	GetNonMemberMeeting(ctx context.Context, id string) (NonMemberMeeting, error)
	ListNonMemberMeetings(ctx context.Context) ([]NonMemberMeeting, error)
	UpdateNonMemberMeeting(ctx context.Context, patch NonMemberMeetingPatch) error
	DeleteNonMemberMeeting(ctx context.Context, id string) error
	DeleteAllNonMemberMeetings(ctx context.Context) error
}

// NonMemberInvitationRepository exposes CRUD operations for anonymous
// invitations.
type NonMemberInvitationRepository interface {
	CreateNonMemberInvitation(ctx context.Context, invitation NonMemberInvitation) error
	GetNonMemberInvitation(ctx context.Context, id string) (NonMemberInvitation, error)
	ListNonMemberInvitations(ctx context.Context) ([]NonMemberInvitation, error)
	ListNonMemberInvitationsByMeeting(ctx context.Context, meetingID string) ([]NonMemberInvitation, error)
	UpdateNonMemberInvitation(ctx context.Context, patch NonMemberInvitationPatch) error
	DeleteNonMemberInvitation(ctx context.Context, id string) error
	DeleteAllNonMemberInvitations(ctx context.Context) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
