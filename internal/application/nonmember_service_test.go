package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/yamp/internal/persistence"
	"github.com/example/yamp/internal/persistence/memory"
	"github.com/example/yamp/internal/testfixtures"
)

func setupNonMemberMeetingServiceTest(t *testing.T) (*NonMemberMeetingService, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	ids := testfixtures.NewIDGenerator("nm-meeting")
	svc := NewNonMemberMeetingService(store, ids.NextFunc(), clock.NowFunc())
	return svc, store
}

func setupNonMemberInvitationServiceTest(t *testing.T) (*NonMemberInvitationService, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	ids := testfixtures.NewIDGenerator("nm-invitation")
	svc := NewNonMemberInvitationService(store, ids.NextFunc(), clock.NowFunc())
	return svc, store
}

func TestNonMemberMeetingService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateNonMemberMeetingInput{
		MeetingName: strPtr("Open planning"),
		UserName:    strPtr("Stranger"),
		UserEmail:   strPtr("stranger@example.com"),
		ProposedDatesAndTimes: rangesPtr(
			TimeRange{StartDate: "2024-02-01T09:00", EndDate: "2024-02-01T10:00"},
		),
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if id != "nm-meeting-1" {
		t.Fatalf("expected generated ID nm-meeting-1, got %q", id)
	}

	meeting, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if meeting.UserEmail != "stranger@example.com" {
		t.Fatalf("expected organizer email round-trip, got %q", meeting.UserEmail)
	}
	if len(meeting.ProposedDatesAndTimes) != 1 {
		t.Fatalf("expected 1 proposed range, got %d", len(meeting.ProposedDatesAndTimes))
	}
}

func TestNonMemberMeetingService_Create_AbsentFieldsDefaultEmpty(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	// The anonymous path never rejects on missing fields; absent values are
	// stored as empty strings.
	id, err := svc.Create(ctx, CreateNonMemberMeetingInput{
		MeetingName: strPtr("Minimal"),
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	record, err := store.GetNonMemberMeeting(ctx, id)
	if err != nil {
		t.Fatalf("expected persisted record, got %v", err)
	}
	if record.UserName != "" || record.UserEmail != "" {
		t.Fatalf("expected empty organizer fields, got %q / %q", record.UserName, record.UserEmail)
	}
}

func TestNonMemberMeetingService_Update(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	fixture := testfixtures.NewMeetingFixture(testfixtures.WithMeetingName("Before"))
	if err := store.CreateNonMemberMeeting(ctx, fixture.NonMember()); err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}

	if err := svc.Update(ctx, UpdateNonMemberMeetingInput{
		MeetingID:   fixture.ID,
		MeetingName: strPtr("After"),
	}); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	meeting, err := svc.GetByID(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if meeting.MeetingName != "After" {
		t.Fatalf("expected updated name, got %q", meeting.MeetingName)
	}
	if meeting.UserEmail != fixture.UserEmail {
		t.Fatalf("expected organizer untouched, got %q", meeting.UserEmail)
	}
}

func TestNonMemberMeetingService_ErrorsPassThrough(t *testing.T) {
	t.Parallel()

	svc, _ := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	// Anonymous operations surface raw persistence errors; the transport layer
	// turns any failure on this path into a server error.
	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected persistence.ErrNotFound, got %v", err)
	}
	if err := svc.DeleteOne(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected persistence.ErrNotFound, got %v", err)
	}
}

func TestNonMemberMeetingService_DeleteOne_CascadesInvitations(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	meeting := testfixtures.NewMeetingFixture()
	if err := store.CreateNonMemberMeeting(ctx, meeting.NonMember()); err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}
	invitation := testfixtures.NewInvitationFixture(testfixtures.WithInvitationMeetingID(meeting.ID))
	if err := store.CreateNonMemberInvitation(ctx, invitation.NonMember()); err != nil {
		t.Fatalf("failed to seed invitation: %v", err)
	}

	if err := svc.DeleteOne(ctx, meeting.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := store.GetNonMemberInvitation(ctx, invitation.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected invitation to be cascaded, got %v", err)
	}
}

func TestNonMemberMeetingService_DeleteAll(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberMeetingServiceTest(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.CreateNonMemberMeeting(ctx, testfixtures.NewMeetingFixture().NonMember()); err != nil {
			t.Fatalf("failed to seed meeting: %v", err)
		}
	}

	if err := svc.DeleteAll(ctx); err != nil {
		t.Fatalf("expected delete all to succeed, got %v", err)
	}
	meetings, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(meetings) != 0 {
		t.Fatalf("expected no meetings to remain, got %d", len(meetings))
	}
}

func TestNonMemberInvitationService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := setupNonMemberInvitationServiceTest(t)
	ctx := context.Background()

	invitation, err := svc.Create(ctx, CreateNonMemberInvitationInput{
		MeetingID:      strPtr("nm-meeting-1"),
		AttendantEmail: strPtr("guest@example.com"),
		AcceptedDatesAndTimes: rangesPtr(
			TimeRange{StartDate: "2024-02-01T09:00", EndDate: "2024-02-01T10:00"},
		),
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if invitation.ID != "nm-invitation-1" {
		t.Fatalf("expected generated ID nm-invitation-1, got %q", invitation.ID)
	}
	if invitation.AttendantEmail != "guest@example.com" {
		t.Fatalf("expected attendant email on the returned record, got %q", invitation.AttendantEmail)
	}
}

func TestNonMemberInvitationService_GetAllByMeetingID(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberInvitationServiceTest(t)
	ctx := context.Background()

	for _, meetingID := range []string{"m-1", "m-1", "m-2"} {
		fixture := testfixtures.NewInvitationFixture(testfixtures.WithInvitationMeetingID(meetingID))
		if err := store.CreateNonMemberInvitation(ctx, fixture.NonMember()); err != nil {
			t.Fatalf("failed to seed invitation: %v", err)
		}
	}

	invitations, err := svc.GetAllByMeetingID(ctx, "m-1")
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(invitations) != 2 {
		t.Fatalf("expected 2 invitations for meeting, got %d", len(invitations))
	}
}

func TestNonMemberInvitationService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc, store := setupNonMemberInvitationServiceTest(t)
	ctx := context.Background()

	fixture := testfixtures.NewInvitationFixture(testfixtures.WithInvitationAttendant("before@example.com"))
	if err := store.CreateNonMemberInvitation(ctx, fixture.NonMember()); err != nil {
		t.Fatalf("failed to seed invitation: %v", err)
	}

	if err := svc.Update(ctx, UpdateNonMemberInvitationInput{
		InvitationID:   fixture.ID,
		AttendantEmail: strPtr("after@example.com"),
	}); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	invitation, err := svc.GetByID(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if invitation.AttendantEmail != "after@example.com" {
		t.Fatalf("expected updated email, got %q", invitation.AttendantEmail)
	}

	if err := svc.DeleteOne(ctx, fixture.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := svc.GetByID(ctx, fixture.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected deleted invitation to be gone, got %v", err)
	}
}
