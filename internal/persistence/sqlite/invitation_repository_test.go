package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/yamp/internal/persistence"
)

func setupInvitationRepositoryTest(t *testing.T) *InvitationRepository {
	t.Helper()
	return NewInvitationRepository(newTestPool(t))
}

func TestInvitationRepository_CreateInvitation(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)
	ctx := context.Background()

	invitation := persistence.Invitation{
		ID:                    "inv1",
		MeetingID:             "meeting1",
		AttendantEmail:        "Bob@Example.com",
		AcceptedDatesAndTimes: `[{"startDate":"2026-09-01T10:00:00Z","endDate":"2026-09-01T11:00:00Z"}]`,
	}
	if err := repo.CreateInvitation(ctx, invitation); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	retrieved, err := repo.GetInvitation(ctx, "inv1")
	if err != nil {
		t.Fatalf("GetInvitation failed: %v", err)
	}
	if retrieved.AttendantEmail != "bob@example.com" {
		t.Errorf("Expected normalized email 'bob@example.com', got '%s'", retrieved.AttendantEmail)
	}
	if retrieved.AcceptedDatesAndTimes != invitation.AcceptedDatesAndTimes {
		t.Errorf("Expected accepted ranges to round-trip, got '%s'", retrieved.AcceptedDatesAndTimes)
	}
}

func TestInvitationRepository_CreateInvitation_MissingFields(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)

	err := repo.CreateInvitation(context.Background(), persistence.Invitation{ID: "inv1", MeetingID: "meeting1"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestInvitationRepository_ListInvitationsByMeeting(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)
	ctx := context.Background()

	for _, invitation := range []persistence.Invitation{
		{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "a@example.com", AcceptedDatesAndTimes: "[]"},
		{ID: "inv2", MeetingID: "meeting2", AttendantEmail: "b@example.com", AcceptedDatesAndTimes: "[]"},
		{ID: "inv3", MeetingID: "meeting1", AttendantEmail: "c@example.com", AcceptedDatesAndTimes: "[]"},
	} {
		if err := repo.CreateInvitation(ctx, invitation); err != nil {
			t.Fatalf("CreateInvitation failed for %s: %v", invitation.ID, err)
		}
	}

	invitations, err := repo.ListInvitationsByMeeting(ctx, "meeting1")
	if err != nil {
		t.Fatalf("ListInvitationsByMeeting failed: %v", err)
	}
	if len(invitations) != 2 {
		t.Fatalf("Expected 2 invitations for meeting1, got %d", len(invitations))
	}

	all, err := repo.ListInvitations(ctx)
	if err != nil {
		t.Fatalf("ListInvitations failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 invitations total, got %d", len(all))
	}
}

func TestInvitationRepository_UpdateInvitation_SparsePatch(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)
	ctx := context.Background()

	invitation := persistence.Invitation{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "bob@example.com", AcceptedDatesAndTimes: "[]"}
	if err := repo.CreateInvitation(ctx, invitation); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	accepted := `[{"startDate":"2026-09-03T09:00:00Z","endDate":"2026-09-03T10:00:00Z"}]`
	if err := repo.UpdateInvitation(ctx, persistence.InvitationPatch{ID: "inv1", AcceptedDatesAndTimes: &accepted}); err != nil {
		t.Fatalf("UpdateInvitation failed: %v", err)
	}

	retrieved, err := repo.GetInvitation(ctx, "inv1")
	if err != nil {
		t.Fatalf("GetInvitation failed: %v", err)
	}
	if retrieved.AcceptedDatesAndTimes != accepted {
		t.Errorf("Expected updated accepted ranges, got '%s'", retrieved.AcceptedDatesAndTimes)
	}
	if retrieved.AttendantEmail != "bob@example.com" {
		t.Errorf("Expected attendant email to be untouched, got '%s'", retrieved.AttendantEmail)
	}
}

func TestInvitationRepository_UpdateInvitation_NotFound(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)

	accepted := "[]"
	err := repo.UpdateInvitation(context.Background(), persistence.InvitationPatch{ID: "missing", AcceptedDatesAndTimes: &accepted})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestInvitationRepository_DeleteInvitation(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)
	ctx := context.Background()

	invitation := persistence.Invitation{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "bob@example.com", AcceptedDatesAndTimes: "[]"}
	if err := repo.CreateInvitation(ctx, invitation); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	if err := repo.DeleteInvitation(ctx, "inv1"); err != nil {
		t.Fatalf("DeleteInvitation failed: %v", err)
	}
	if _, err := repo.GetInvitation(ctx, "inv1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected invitation to be deleted, got %v", err)
	}

	if err := repo.DeleteInvitation(ctx, "inv1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInvitationRepository_DeleteInvitationsByMeeting(t *testing.T) {
	repo := setupInvitationRepositoryTest(t)
	ctx := context.Background()

	for _, invitation := range []persistence.Invitation{
		{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "a@example.com", AcceptedDatesAndTimes: "[]"},
		{ID: "inv2", MeetingID: "meeting1", AttendantEmail: "b@example.com", AcceptedDatesAndTimes: "[]"},
		{ID: "inv3", MeetingID: "meeting2", AttendantEmail: "c@example.com", AcceptedDatesAndTimes: "[]"},
	} {
		if err := repo.CreateInvitation(ctx, invitation); err != nil {
			t.Fatalf("CreateInvitation failed for %s: %v", invitation.ID, err)
		}
	}

	if err := repo.DeleteInvitationsByMeeting(ctx, "meeting1"); err != nil {
		t.Fatalf("DeleteInvitationsByMeeting failed: %v", err)
	}

	remaining, err := repo.ListInvitations(ctx)
	if err != nil {
		t.Fatalf("ListInvitations failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "inv3" {
		t.Errorf("Expected only inv3 to survive, got %v", remaining)
	}
}
