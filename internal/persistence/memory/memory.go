// Package memory provides an in-memory persistence implementation that mirrors
// the SQLite layer's semantics. It backs tests and local experiments where a
// database file is unwanted.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/yamp/internal/persistence"
)

// Storage implements every persistence repository interface over maps guarded
// by a single mutex. Values are cloned on the way in and out so callers never
// share state with the store.
type Storage struct {
	mu                   sync.RWMutex
	users                map[string]persistence.User
	meetings             map[string]persistence.Meeting
	invitations          map[string]persistence.Invitation
	nonMemberMeetings    map[string]persistence.NonMemberMeeting
	nonMemberInvitations map[string]persistence.NonMemberInvitation
	sessions             map[string]persistence.Session // keyed by token
}

// NewStorage returns an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{
		users:                make(map[string]persistence.User),
		meetings:             make(map[string]persistence.Meeting),
		invitations:          make(map[string]persistence.Invitation),
		nonMemberMeetings:    make(map[string]persistence.NonMemberMeeting),
		nonMemberInvitations: make(map[string]persistence.NonMemberInvitation),
		sessions:             make(map[string]persistence.Session),
	}
}

// Close releases resources held by the storage. No-op for the in-memory
// implementation.
func (s *Storage) Close() error {
	return nil
}

// --- UserRepository implementation ---

// CreateUser stores a new user.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.UserName == "" || user.Email == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return persistence.ErrDuplicate
	}
	user.Email = normalizeEmail(user.Email)
	if s.emailTakenLocked(user.ID, user.Email) {
		return persistence.ErrDuplicate
	}

	stampTimes(&user.CreatedAt, &user.UpdatedAt)
	s.users[user.ID] = user
	return nil
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address, case-insensitively.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := normalizeEmail(email)
	for _, user := range s.users {
		if user.Email == lower {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// ListUsers returns all users ordered by CreatedAt then ID.
func (s *Storage) ListUsers(ctx context.Context) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]persistence.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sortByCreated(users, func(u persistence.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return users, nil
}

// UpdateUser applies a sparse patch to an existing user.
func (s *Storage) UpdateUser(ctx context.Context, patch persistence.UserPatch) error {
	if patch.ID == "" || !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[patch.ID]
	if !ok {
		return persistence.ErrNotFound
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if s.emailTakenLocked(patch.ID, email) {
			return persistence.ErrDuplicate
		}
		user.Email = email
	}
	if patch.UserName != nil {
		user.UserName = *patch.UserName
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	user.UpdatedAt = time.Now().UTC()

	s.users[patch.ID] = user
	return nil
}

// DeleteUser removes a user together with the meetings the user initiated and
// the invitations attached to those meetings.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return persistence.ErrNotFound
	}

	for meetingID, meeting := range s.meetings {
		if meeting.InitiatedBy != id {
			continue
		}
		for invitationID, invitation := range s.invitations {
			if invitation.MeetingID == meetingID {
				delete(s.invitations, invitationID)
			}
		}
		delete(s.meetings, meetingID)
	}
	delete(s.users, id)
	return nil
}

// DeleteAllUsers clears users, meetings, and invitations.
func (s *Storage) DeleteAllUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]persistence.User)
	s.meetings = make(map[string]persistence.Meeting)
	s.invitations = make(map[string]persistence.Invitation)
	return nil
}

func (s *Storage) emailTakenLocked(id, email string) bool {
	for existingID, user := range s.users {
		if existingID == id {
			continue
		}
		if user.Email == email {
			return true
		}
	}
	return false
}

// --- MeetingRepository implementation ---

// CreateMeeting stores a new meeting.
func (s *Storage) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if meeting.ID == "" || meeting.MeetingName == "" || meeting.InitiatedBy == "" || meeting.ProposedDatesAndTimes == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[meeting.ID]; ok {
		return persistence.ErrDuplicate
	}

	stampTimes(&meeting.CreatedAt, &meeting.UpdatedAt)
	s.meetings[meeting.ID] = cloneMeeting(meeting)
	return nil
}

// GetMeeting retrieves a meeting by ID.
func (s *Storage) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meeting, ok := s.meetings[id]
	if !ok {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	return cloneMeeting(meeting), nil
}

// ListMeetings returns all meetings ordered by CreatedAt then ID.
func (s *Storage) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meetings := make([]persistence.Meeting, 0, len(s.meetings))
	for _, meeting := range s.meetings {
		meetings = append(meetings, cloneMeeting(meeting))
	}
	sortByCreated(meetings, func(m persistence.Meeting) (time.Time, string) { return m.CreatedAt, m.ID })
	return meetings, nil
}

// ListMeetingsByInitiator returns all meetings initiated by the given user.
func (s *Storage) ListMeetingsByInitiator(ctx context.Context, userID string) ([]persistence.Meeting, error) {
	if userID == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var meetings []persistence.Meeting
	for _, meeting := range s.meetings {
		if meeting.InitiatedBy == userID {
			meetings = append(meetings, cloneMeeting(meeting))
		}
	}
	sortByCreated(meetings, func(m persistence.Meeting) (time.Time, string) { return m.CreatedAt, m.ID })
	return meetings, nil
}

// UpdateMeeting applies a sparse patch to an existing meeting.
func (s *Storage) UpdateMeeting(ctx context.Context, patch persistence.MeetingPatch) error {
	if patch.ID == "" || !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, ok := s.meetings[patch.ID]
	if !ok {
		return persistence.ErrNotFound
	}

	if patch.MeetingName != nil {
		meeting.MeetingName = *patch.MeetingName
	}
	if patch.MeetingDescription != nil {
		description := *patch.MeetingDescription
		meeting.MeetingDescription = &description
	}
	if patch.InitiatedBy != nil {
		meeting.InitiatedBy = *patch.InitiatedBy
	}
	if patch.ProposedDatesAndTimes != nil {
		meeting.ProposedDatesAndTimes = *patch.ProposedDatesAndTimes
	}
	meeting.UpdatedAt = time.Now().UTC()

	s.meetings[patch.ID] = meeting
	return nil
}

// DeleteMeeting removes a meeting and its invitations.
func (s *Storage) DeleteMeeting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[id]; !ok {
		return persistence.ErrNotFound
	}

	for invitationID, invitation := range s.invitations {
		if invitation.MeetingID == id {
			delete(s.invitations, invitationID)
		}
	}
	delete(s.meetings, id)
	return nil
}

// DeleteAllMeetings clears meetings and invitations.
func (s *Storage) DeleteAllMeetings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meetings = make(map[string]persistence.Meeting)
	s.invitations = make(map[string]persistence.Invitation)
	return nil
}

// --- InvitationRepository implementation ---

// CreateInvitation stores a new invitation.
func (s *Storage) CreateInvitation(ctx context.Context, invitation persistence.Invitation) error {
	if invitation.ID == "" || invitation.MeetingID == "" || invitation.AttendantEmail == "" || invitation.AcceptedDatesAndTimes == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invitations[invitation.ID]; ok {
		return persistence.ErrDuplicate
	}

	invitation.AttendantEmail = normalizeEmail(invitation.AttendantEmail)
	stampTimes(&invitation.CreatedAt, &invitation.UpdatedAt)
	s.invitations[invitation.ID] = invitation
	return nil
}

// GetInvitation retrieves an invitation by ID.
func (s *Storage) GetInvitation(ctx context.Context, id string) (persistence.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitation, ok := s.invitations[id]
	if !ok {
		return persistence.Invitation{}, persistence.ErrNotFound
	}
	return invitation, nil
}

// ListInvitations returns all invitations ordered by CreatedAt then ID.
func (s *Storage) ListInvitations(ctx context.Context) ([]persistence.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitations := make([]persistence.Invitation, 0, len(s.invitations))
	for _, invitation := range s.invitations {
		invitations = append(invitations, invitation)
	}
	sortByCreated(invitations, func(i persistence.Invitation) (time.Time, string) { return i.CreatedAt, i.ID })
	return invitations, nil
}

// ListInvitationsByMeeting returns all invitations referencing a meeting.
func (s *Storage) ListInvitationsByMeeting(ctx context.Context, meetingID string) ([]persistence.Invitation, error) {
	if meetingID == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var invitations []persistence.Invitation
	for _, invitation := range s.invitations {
		if invitation.MeetingID == meetingID {
			invitations = append(invitations, invitation)
		}
	}
	sortByCreated(invitations, func(i persistence.Invitation) (time.Time, string) { return i.CreatedAt, i.ID })
	return invitations, nil
}

// UpdateInvitation applies a sparse patch to an existing invitation.
func (s *Storage) UpdateInvitation(ctx context.Context, patch persistence.InvitationPatch) error {
	if patch.ID == "" || !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invitation, ok := s.invitations[patch.ID]
	if !ok {
		return persistence.ErrNotFound
	}

	if patch.MeetingID != nil {
		invitation.MeetingID = *patch.MeetingID
	}
	if patch.AttendantEmail != nil {
		invitation.AttendantEmail = normalizeEmail(*patch.AttendantEmail)
	}
	if patch.AcceptedDatesAndTimes != nil {
		invitation.AcceptedDatesAndTimes = *patch.AcceptedDatesAndTimes
	}
	invitation.UpdatedAt = time.Now().UTC()

	s.invitations[patch.ID] = invitation
	return nil
}

// DeleteInvitation removes an invitation by ID.
func (s *Storage) DeleteInvitation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invitations[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.invitations, id)
	return nil
}

// DeleteInvitationsByMeeting removes every invitation referencing a meeting.
func (s *Storage) DeleteInvitationsByMeeting(ctx context.Context, meetingID string) error {
	if meetingID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for invitationID, invitation := range s.invitations {
		if invitation.MeetingID == meetingID {
			delete(s.invitations, invitationID)
		}
	}
	return nil
}

// DeleteAllInvitations clears the invitations map.
func (s *Storage) DeleteAllInvitations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invitations = make(map[string]persistence.Invitation)
	return nil
}

// --- NonMemberMeetingRepository implementation ---

// CreateNonMemberMeeting stores a new anonymous meeting.
func (s *Storage) CreateNonMemberMeeting(ctx context.Context, meeting persistence.NonMemberMeeting) error {
	if meeting.ID == "" || meeting.MeetingName == "" || meeting.ProposedDatesAndTimes == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nonMemberMeetings[meeting.ID]; ok {
		return persistence.ErrDuplicate
	}

	meeting.UserEmail = normalizeEmail(meeting.UserEmail)
	stampTimes(&meeting.CreatedAt, &meeting.UpdatedAt)
	s.nonMemberMeetings[meeting.ID] = cloneNonMemberMeeting(meeting)
	return nil
}

// GetNonMemberMeeting retrieves an anonymous meeting by ID.
func (s *Storage) GetNonMemberMeeting(ctx context.Context, id string) (persistence.NonMemberMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meeting, ok := s.nonMemberMeetings[id]
	if !ok {
		return persistence.NonMemberMeeting{}, persistence.ErrNotFound
	}
	return cloneNonMemberMeeting(meeting), nil
}

// ListNonMemberMeetings returns all anonymous meetings ordered by CreatedAt then ID.
func (s *Storage) ListNonMemberMeetings(ctx context.Context) ([]persistence.NonMemberMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meetings := make([]persistence.NonMemberMeeting, 0, len(s.nonMemberMeetings))
	for _, meeting := range s.nonMemberMeetings {
		meetings = append(meetings, cloneNonMemberMeeting(meeting))
	}
	sortByCreated(meetings, func(m persistence.NonMemberMeeting) (time.Time, string) { return m.CreatedAt, m.ID })
	return meetings, nil
}

// UpdateNonMemberMeeting applies a sparse patch to an existing anonymous meeting.
func (s *Storage) UpdateNonMemberMeeting(ctx context.Context, patch persistence.NonMemberMeetingPatch) error {
	if patch.ID == "" || !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, ok := s.nonMemberMeetings[patch.ID]
	if !ok {
		return persistence.ErrNotFound
	}

	if patch.MeetingName != nil {
		meeting.MeetingName = *patch.MeetingName
	}
	if patch.MeetingDescription != nil {
		description := *patch.MeetingDescription
		meeting.MeetingDescription = &description
	}
	if patch.UserName != nil {
		meeting.UserName = *patch.UserName
	}
	if patch.UserEmail != nil {
		meeting.UserEmail = normalizeEmail(*patch.UserEmail)
	}
	if patch.ProposedDatesAndTimes != nil {
		meeting.ProposedDatesAndTimes = *patch.ProposedDatesAndTimes
	}
	meeting.UpdatedAt = time.Now().UTC()

	s.nonMemberMeetings[patch.ID] = meeting
	return nil
}

// DeleteNonMemberMeeting removes an anonymous meeting and its invitations.
func (s *Storage) DeleteNonMemberMeeting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nonMemberMeetings[id]; !ok {
		return persistence.ErrNotFound
	}

	for invitationID, invitation := range s.nonMemberInvitations {
		if invitation.MeetingID == id {
			delete(s.nonMemberInvitations, invitationID)
		}
	}
	delete(s.nonMemberMeetings, id)
	return nil
}

// DeleteAllNonMemberMeetings clears anonymous meetings and invitations.
func (s *Storage) DeleteAllNonMemberMeetings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonMemberMeetings = make(map[string]persistence.NonMemberMeeting)
	s.nonMemberInvitations = make(map[string]persistence.NonMemberInvitation)
	return nil
}

// --- NonMemberInvitationRepository implementation ---

// CreateNonMemberInvitation stores a new anonymous invitation.
func (s *Storage) CreateNonMemberInvitation(ctx context.Context, invitation persistence.NonMemberInvitation) error {
	if invitation.ID == "" || invitation.MeetingID == "" || invitation.AttendantEmail == "" {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nonMemberInvitations[invitation.ID]; ok {
		return persistence.ErrDuplicate
	}

	invitation.AttendantEmail = normalizeEmail(invitation.AttendantEmail)
	stampTimes(&invitation.CreatedAt, &invitation.UpdatedAt)
	s.nonMemberInvitations[invitation.ID] = invitation
	return nil
}

// GetNonMemberInvitation retrieves an anonymous invitation by ID.
func (s *Storage) GetNonMemberInvitation(ctx context.Context, id string) (persistence.NonMemberInvitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitation, ok := s.nonMemberInvitations[id]
	if !ok {
		return persistence.NonMemberInvitation{}, persistence.ErrNotFound
	}
	return invitation, nil
}

// ListNonMemberInvitations returns all anonymous invitations ordered by
// CreatedAt then ID.
func (s *Storage) ListNonMemberInvitations(ctx context.Context) ([]persistence.NonMemberInvitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitations := make([]persistence.NonMemberInvitation, 0, len(s.nonMemberInvitations))
	for _, invitation := range s.nonMemberInvitations {
		invitations = append(invitations, invitation)
	}
	sortByCreated(invitations, func(i persistence.NonMemberInvitation) (time.Time, string) { return i.CreatedAt, i.ID })
	return invitations, nil
}

// ListNonMemberInvitationsByMeeting returns all anonymous invitations
// referencing a meeting.
func (s *Storage) ListNonMemberInvitationsByMeeting(ctx context.Context, meetingID string) ([]persistence.NonMemberInvitation, error) {
	if meetingID == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var invitations []persistence.NonMemberInvitation
	for _, invitation := range s.nonMemberInvitations {
		if invitation.MeetingID == meetingID {
			invitations = append(invitations, invitation)
		}
	}
	sortByCreated(invitations, func(i persistence.NonMemberInvitation) (time.Time, string) { return i.CreatedAt, i.ID })
	return invitations, nil
}

// UpdateNonMemberInvitation applies a sparse patch to an existing anonymous
// invitation.
func (s *Storage) UpdateNonMemberInvitation(ctx context.Context, patch persistence.NonMemberInvitationPatch) error {
	if patch.ID == "" || !patch.HasChanges() {
		return persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invitation, ok := s.nonMemberInvitations[patch.ID]
	if !ok {
		return persistence.ErrNotFound
	}

	if patch.MeetingID != nil {
		invitation.MeetingID = *patch.MeetingID
	}
	if patch.AttendantEmail != nil {
		invitation.AttendantEmail = normalizeEmail(*patch.AttendantEmail)
	}
	if patch.AcceptedDatesAndTimes != nil {
		invitation.AcceptedDatesAndTimes = *patch.AcceptedDatesAndTimes
	}
	invitation.UpdatedAt = time.Now().UTC()

	s.nonMemberInvitations[patch.ID] = invitation
	return nil
}

// DeleteNonMemberInvitation removes an anonymous invitation by ID.
func (s *Storage) DeleteNonMemberInvitation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nonMemberInvitations[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.nonMemberInvitations, id)
	return nil
}

// DeleteAllNonMemberInvitations clears the anonymous invitations map.
func (s *Storage) DeleteAllNonMemberInvitations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonMemberInvitations = make(map[string]persistence.NonMemberInvitation)
	return nil
}

// --- SessionRepository implementation ---

// CreateSession stores a new session keyed by token.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.ID == "" || session.UserID == "" || strings.TrimSpace(session.Token) == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.Token]; ok {
		return persistence.Session{}, persistence.ErrDuplicate
	}

	stampTimes(&session.CreatedAt, &session.UpdatedAt)
	s.sessions[session.Token] = cloneSession(session)
	return cloneSession(session), nil
}

// GetSession retrieves a session by token.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[strings.TrimSpace(token)]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return cloneSession(session), nil
}

// RevokeSession marks the session identified by token as revoked.
func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[strings.TrimSpace(token)]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}

	stamp := revokedAt.UTC()
	session.RevokedAt = &stamp
	session.UpdatedAt = time.Now().UTC()
	s.sessions[session.Token] = session
	return cloneSession(session), nil
}

// DeleteExpiredSessions removes every session that expired before reference.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if session.ExpiresAt.Before(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}

// --- helpers ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func stampTimes(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

func sortByCreated[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		createdI, idI := key(items[i])
		createdJ, idJ := key(items[j])
		if createdI.Equal(createdJ) {
			return idI < idJ
		}
		return createdI.Before(createdJ)
	})
}

func cloneMeeting(meeting persistence.Meeting) persistence.Meeting {
	if meeting.MeetingDescription != nil {
		description := *meeting.MeetingDescription
		meeting.MeetingDescription = &description
	}
	return meeting
}

func cloneNonMemberMeeting(meeting persistence.NonMemberMeeting) persistence.NonMemberMeeting {
	if meeting.MeetingDescription != nil {
		description := *meeting.MeetingDescription
		meeting.MeetingDescription = &description
	}
	return meeting
}

func cloneSession(session persistence.Session) persistence.Session {
	if session.RevokedAt != nil {
		revokedAt := *session.RevokedAt
		session.RevokedAt = &revokedAt
	}
	return session
}
