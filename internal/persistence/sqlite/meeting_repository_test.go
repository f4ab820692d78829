package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/yamp/internal/persistence"
)

func setupMeetingRepositoryTest(t *testing.T) (*MeetingRepository, *ConnectionPool) {
	t.Helper()
	pool := newTestPool(t)
	return NewMeetingRepository(pool), pool
}

func TestMeetingRepository_CreateMeeting(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	description := "Weekly planning sync"
	meeting := persistence.Meeting{
		ID:                    "meeting1",
		MeetingName:           "Planning",
		MeetingDescription:    &description,
		InitiatedBy:           "user1",
		ProposedDatesAndTimes: `[{"startDate":"2026-09-01T10:00:00Z","endDate":"2026-09-01T11:00:00Z"}]`,
	}
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	retrieved, err := repo.GetMeeting(ctx, "meeting1")
	if err != nil {
		t.Fatalf("GetMeeting failed: %v", err)
	}
	if retrieved.MeetingName != "Planning" {
		t.Errorf("Expected meeting name 'Planning', got '%s'", retrieved.MeetingName)
	}
	if retrieved.MeetingDescription == nil || *retrieved.MeetingDescription != description {
		t.Errorf("Expected description to round-trip, got %v", retrieved.MeetingDescription)
	}
	if retrieved.ProposedDatesAndTimes != meeting.ProposedDatesAndTimes {
		t.Errorf("Expected proposed ranges to round-trip, got '%s'", retrieved.ProposedDatesAndTimes)
	}
}

func TestMeetingRepository_CreateMeeting_NilDescription(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	meeting := persistence.Meeting{ID: "meeting1", MeetingName: "Planning", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	retrieved, err := repo.GetMeeting(ctx, "meeting1")
	if err != nil {
		t.Fatalf("GetMeeting failed: %v", err)
	}
	if retrieved.MeetingDescription != nil {
		t.Errorf("Expected nil description, got %v", *retrieved.MeetingDescription)
	}
}

func TestMeetingRepository_CreateMeeting_MissingFields(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)

	err := repo.CreateMeeting(context.Background(), persistence.Meeting{ID: "meeting1", MeetingName: "Planning"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestMeetingRepository_ListMeetingsByInitiator(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	for _, meeting := range []persistence.Meeting{
		{ID: "meeting1", MeetingName: "Planning", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"},
		{ID: "meeting2", MeetingName: "Review", InitiatedBy: "user2", ProposedDatesAndTimes: "[]"},
		{ID: "meeting3", MeetingName: "Retro", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"},
	} {
		if err := repo.CreateMeeting(ctx, meeting); err != nil {
			t.Fatalf("CreateMeeting failed for %s: %v", meeting.ID, err)
		}
	}

	meetings, err := repo.ListMeetingsByInitiator(ctx, "user1")
	if err != nil {
		t.Fatalf("ListMeetingsByInitiator failed: %v", err)
	}
	if len(meetings) != 2 {
		t.Fatalf("Expected 2 meetings for user1, got %d", len(meetings))
	}
	for _, meeting := range meetings {
		if meeting.InitiatedBy != "user1" {
			t.Errorf("Expected initiator 'user1', got '%s'", meeting.InitiatedBy)
		}
	}

	all, err := repo.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 meetings total, got %d", len(all))
	}
}

func TestMeetingRepository_UpdateMeeting_SparsePatch(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	meeting := persistence.Meeting{ID: "meeting1", MeetingName: "Planning", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}
	if err := repo.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	ranges := `[{"startDate":"2026-09-02T10:00:00Z","endDate":"2026-09-02T11:00:00Z"}]`
	patch := persistence.MeetingPatch{ID: "meeting1", ProposedDatesAndTimes: &ranges}
	if err := repo.UpdateMeeting(ctx, patch); err != nil {
		t.Fatalf("UpdateMeeting failed: %v", err)
	}

	retrieved, err := repo.GetMeeting(ctx, "meeting1")
	if err != nil {
		t.Fatalf("GetMeeting failed: %v", err)
	}
	if retrieved.ProposedDatesAndTimes != ranges {
		t.Errorf("Expected updated ranges, got '%s'", retrieved.ProposedDatesAndTimes)
	}
	if retrieved.MeetingName != "Planning" {
		t.Errorf("Expected meeting name to be untouched, got '%s'", retrieved.MeetingName)
	}
}

func TestMeetingRepository_UpdateMeeting_NotFound(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)

	name := "ghost"
	err := repo.UpdateMeeting(context.Background(), persistence.MeetingPatch{ID: "missing", MeetingName: &name})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestMeetingRepository_DeleteMeeting_CascadesInvitations(t *testing.T) {
	repo, pool := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	invitations := NewInvitationRepository(pool)

	if err := repo.CreateMeeting(ctx, persistence.Meeting{ID: "meeting1", MeetingName: "Planning", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	if err := invitations.CreateInvitation(ctx, persistence.Invitation{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "bob@example.com", AcceptedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	if err := repo.DeleteMeeting(ctx, "meeting1"); err != nil {
		t.Fatalf("DeleteMeeting failed: %v", err)
	}

	if _, err := repo.GetMeeting(ctx, "meeting1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected meeting to be deleted, got %v", err)
	}
	if _, err := invitations.GetInvitation(ctx, "inv1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected invitation to be deleted, got %v", err)
	}
}

func TestMeetingRepository_DeleteMeeting_NotFound(t *testing.T) {
	repo, _ := setupMeetingRepositoryTest(t)

	err := repo.DeleteMeeting(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestMeetingRepository_DeleteAllMeetings(t *testing.T) {
	repo, pool := setupMeetingRepositoryTest(t)
	ctx := context.Background()

	invitations := NewInvitationRepository(pool)

	if err := repo.CreateMeeting(ctx, persistence.Meeting{ID: "meeting1", MeetingName: "Planning", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	if err := invitations.CreateInvitation(ctx, persistence.Invitation{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "bob@example.com", AcceptedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	if err := repo.DeleteAllMeetings(ctx); err != nil {
		t.Fatalf("DeleteAllMeetings failed: %v", err)
	}

	meetings, err := repo.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(meetings) != 0 {
		t.Errorf("Expected 0 meetings, got %d", len(meetings))
	}
	remaining, err := invitations.ListInvitations(ctx)
	if err != nil {
		t.Fatalf("ListInvitations failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected 0 invitations after wipe, got %d", len(remaining))
	}
}
