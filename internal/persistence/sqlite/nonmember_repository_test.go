package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/yamp/internal/persistence"
)

func TestNonMemberMeetingRepository_CreateAndGet(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberMeetingRepository(pool)
	ctx := context.Background()

	meeting := persistence.NonMemberMeeting{
		ID:                    "nmm1",
		MeetingName:           "Community call",
		UserName:              "guest",
		UserEmail:             "Guest@Example.com",
		ProposedDatesAndTimes: "[]",
	}
	if err := repo.CreateNonMemberMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateNonMemberMeeting failed: %v", err)
	}

	retrieved, err := repo.GetNonMemberMeeting(ctx, "nmm1")
	if err != nil {
		t.Fatalf("GetNonMemberMeeting failed: %v", err)
	}
	if retrieved.UserEmail != "guest@example.com" {
		t.Errorf("Expected normalized organizer email, got '%s'", retrieved.UserEmail)
	}
	if retrieved.MeetingDescription != nil {
		t.Errorf("Expected nil description, got %v", *retrieved.MeetingDescription)
	}
}

func TestNonMemberMeetingRepository_UpdateSparsePatch(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberMeetingRepository(pool)
	ctx := context.Background()

	meeting := persistence.NonMemberMeeting{ID: "nmm1", MeetingName: "Community call", UserName: "guest", UserEmail: "guest@example.com", ProposedDatesAndTimes: "[]"}
	if err := repo.CreateNonMemberMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateNonMemberMeeting failed: %v", err)
	}

	name := "Community call v2"
	if err := repo.UpdateNonMemberMeeting(ctx, persistence.NonMemberMeetingPatch{ID: "nmm1", MeetingName: &name}); err != nil {
		t.Fatalf("UpdateNonMemberMeeting failed: %v", err)
	}

	retrieved, err := repo.GetNonMemberMeeting(ctx, "nmm1")
	if err != nil {
		t.Fatalf("GetNonMemberMeeting failed: %v", err)
	}
	if retrieved.MeetingName != "Community call v2" {
		t.Errorf("Expected updated meeting name, got '%s'", retrieved.MeetingName)
	}
	if retrieved.UserName != "guest" {
		t.Errorf("Expected organizer name to be untouched, got '%s'", retrieved.UserName)
	}
}

func TestNonMemberMeetingRepository_DeleteCascadesInvitations(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberMeetingRepository(pool)
	invitations := NewNonMemberInvitationRepository(pool)
	ctx := context.Background()

	if err := repo.CreateNonMemberMeeting(ctx, persistence.NonMemberMeeting{ID: "nmm1", MeetingName: "Community call", UserName: "guest", UserEmail: "guest@example.com", ProposedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateNonMemberMeeting failed: %v", err)
	}
	if err := invitations.CreateNonMemberInvitation(ctx, persistence.NonMemberInvitation{ID: "nmi1", MeetingID: "nmm1", AttendantEmail: "bob@example.com"}); err != nil {
		t.Fatalf("CreateNonMemberInvitation failed: %v", err)
	}

	if err := repo.DeleteNonMemberMeeting(ctx, "nmm1"); err != nil {
		t.Fatalf("DeleteNonMemberMeeting failed: %v", err)
	}

	if _, err := repo.GetNonMemberMeeting(ctx, "nmm1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected meeting to be deleted, got %v", err)
	}
	if _, err := invitations.GetNonMemberInvitation(ctx, "nmi1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected invitation to be deleted, got %v", err)
	}
}

func TestNonMemberInvitationRepository_CreateWithoutAcceptedRanges(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberInvitationRepository(pool)
	ctx := context.Background()

	// The anonymous flow allows an empty accepted payload at this layer.
	invitation := persistence.NonMemberInvitation{ID: "nmi1", MeetingID: "nmm1", AttendantEmail: "bob@example.com"}
	if err := repo.CreateNonMemberInvitation(ctx, invitation); err != nil {
		t.Fatalf("CreateNonMemberInvitation failed: %v", err)
	}

	retrieved, err := repo.GetNonMemberInvitation(ctx, "nmi1")
	if err != nil {
		t.Fatalf("GetNonMemberInvitation failed: %v", err)
	}
	if retrieved.AcceptedDatesAndTimes != "" {
		t.Errorf("Expected empty accepted ranges, got '%s'", retrieved.AcceptedDatesAndTimes)
	}
}

func TestNonMemberInvitationRepository_ListByMeeting(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberInvitationRepository(pool)
	ctx := context.Background()

	for _, invitation := range []persistence.NonMemberInvitation{
		{ID: "nmi1", MeetingID: "nmm1", AttendantEmail: "a@example.com"},
		{ID: "nmi2", MeetingID: "nmm2", AttendantEmail: "b@example.com"},
		{ID: "nmi3", MeetingID: "nmm1", AttendantEmail: "c@example.com"},
	} {
		if err := repo.CreateNonMemberInvitation(ctx, invitation); err != nil {
			t.Fatalf("CreateNonMemberInvitation failed for %s: %v", invitation.ID, err)
		}
	}

	invitations, err := repo.ListNonMemberInvitationsByMeeting(ctx, "nmm1")
	if err != nil {
		t.Fatalf("ListNonMemberInvitationsByMeeting failed: %v", err)
	}
	if len(invitations) != 2 {
		t.Fatalf("Expected 2 invitations for nmm1, got %d", len(invitations))
	}
}

func TestNonMemberInvitationRepository_UpdateAndDelete(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberInvitationRepository(pool)
	ctx := context.Background()

	if err := repo.CreateNonMemberInvitation(ctx, persistence.NonMemberInvitation{ID: "nmi1", MeetingID: "nmm1", AttendantEmail: "bob@example.com"}); err != nil {
		t.Fatalf("CreateNonMemberInvitation failed: %v", err)
	}

	accepted := `[{"startDate":"2026-09-04T09:00:00Z","endDate":"2026-09-04T10:00:00Z"}]`
	if err := repo.UpdateNonMemberInvitation(ctx, persistence.NonMemberInvitationPatch{ID: "nmi1", AcceptedDatesAndTimes: &accepted}); err != nil {
		t.Fatalf("UpdateNonMemberInvitation failed: %v", err)
	}

	retrieved, err := repo.GetNonMemberInvitation(ctx, "nmi1")
	if err != nil {
		t.Fatalf("GetNonMemberInvitation failed: %v", err)
	}
	if retrieved.AcceptedDatesAndTimes != accepted {
		t.Errorf("Expected updated accepted ranges, got '%s'", retrieved.AcceptedDatesAndTimes)
	}

	if err := repo.DeleteNonMemberInvitation(ctx, "nmi1"); err != nil {
		t.Fatalf("DeleteNonMemberInvitation failed: %v", err)
	}
	if _, err := repo.GetNonMemberInvitation(ctx, "nmi1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected invitation to be deleted, got %v", err)
	}
}

func TestNonMemberMeetingRepository_DeleteAll(t *testing.T) {
	pool := newTestPool(t)
	repo := NewNonMemberMeetingRepository(pool)
	invitations := NewNonMemberInvitationRepository(pool)
	ctx := context.Background()

	if err := repo.CreateNonMemberMeeting(ctx, persistence.NonMemberMeeting{ID: "nmm1", MeetingName: "Community call", UserName: "guest", UserEmail: "guest@example.com", ProposedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateNonMemberMeeting failed: %v", err)
	}
	if err := invitations.CreateNonMemberInvitation(ctx, persistence.NonMemberInvitation{ID: "nmi1", MeetingID: "nmm1", AttendantEmail: "bob@example.com"}); err != nil {
		t.Fatalf("CreateNonMemberInvitation failed: %v", err)
	}

	if err := repo.DeleteAllNonMemberMeetings(ctx); err != nil {
		t.Fatalf("DeleteAllNonMemberMeetings failed: %v", err)
	}

	meetings, err := repo.ListNonMemberMeetings(ctx)
	if err != nil {
		t.Fatalf("ListNonMemberMeetings failed: %v", err)
	}
	if len(meetings) != 0 {
		t.Errorf("Expected 0 meetings, got %d", len(meetings))
	}
	remaining, err := invitations.ListNonMemberInvitations(ctx)
	if err != nil {
		t.Fatalf("ListNonMemberInvitations failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected 0 invitations after wipe, got %d", len(remaining))
	}
}
