package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/yamp/internal/persistence"
)

func setupUserRepositoryTest(t *testing.T) (*UserRepository, *ConnectionPool) {
	t.Helper()
	pool := newTestPool(t)
	return NewUserRepository(pool), pool
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	ctx := context.Background()

	user := persistence.User{
		ID:           "user1",
		UserName:     "alice",
		Email:        "Alice@Example.com",
		PasswordHash: "hashed_password",
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.UserName != "alice" {
		t.Errorf("Expected user name 'alice', got '%s'", retrieved.UserName)
	}
	if retrieved.Email != "alice@example.com" {
		t.Errorf("Expected normalized email 'alice@example.com', got '%s'", retrieved.Email)
	}
	if retrieved.CreatedAt.IsZero() || retrieved.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be populated")
	}
}

func TestUserRepository_CreateUser_MissingFields(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	err := repo.CreateUser(context.Background(), persistence.User{ID: "user1", UserName: "alice"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	ctx := context.Background()

	user := persistence.User{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("First CreateUser failed: %v", err)
	}

	user.ID = "user2"
	err := repo.CreateUser(ctx, user)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	ctx := context.Background()

	user := persistence.User{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Lookup is case-insensitive.
	retrieved, err := repo.GetUserByEmail(ctx, "ALICE@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if retrieved.ID != "user1" {
		t.Errorf("Expected ID 'user1', got '%s'", retrieved.ID)
	}

	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestUserRepository_ListUsers(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	ctx := context.Background()

	for _, user := range []persistence.User{
		{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash1"},
		{ID: "user2", UserName: "bob", Email: "bob@example.com", PasswordHash: "hash2"},
	} {
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed for %s: %v", user.ID, err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].ID != "user1" {
		t.Errorf("Expected first user to be 'user1', got '%s'", users[0].ID)
	}
}

func TestUserRepository_UpdateUser_SparsePatch(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	ctx := context.Background()

	user := persistence.User{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	name := "alice-renamed"
	if err := repo.UpdateUser(ctx, persistence.UserPatch{ID: "user1", UserName: &name}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	retrieved, err := repo.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.UserName != "alice-renamed" {
		t.Errorf("Expected updated user name, got '%s'", retrieved.UserName)
	}
	// Untouched fields survive the patch.
	if retrieved.Email != "alice@example.com" {
		t.Errorf("Expected email to be untouched, got '%s'", retrieved.Email)
	}
	if retrieved.PasswordHash != "hash" {
		t.Errorf("Expected password hash to be untouched, got '%s'", retrieved.PasswordHash)
	}
}

func TestUserRepository_UpdateUser_NoChanges(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	err := repo.UpdateUser(context.Background(), persistence.UserPatch{ID: "user1"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation for empty patch, got %v", err)
	}
}

func TestUserRepository_UpdateUser_NotFound(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	name := "ghost"
	err := repo.UpdateUser(context.Background(), persistence.UserPatch{ID: "missing", UserName: &name})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DeleteUser_Cascades(t *testing.T) {
	repo, pool := setupUserRepositoryTest(t)
	ctx := context.Background()

	meetings := NewMeetingRepository(pool)
	invitations := NewInvitationRepository(pool)

	user := persistence.User{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	meeting := persistence.Meeting{ID: "meeting1", MeetingName: "Standup", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}
	if err := meetings.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	invitation := persistence.Invitation{ID: "inv1", MeetingID: "meeting1", AttendantEmail: "bob@example.com", AcceptedDatesAndTimes: "[]"}
	if err := invitations.CreateInvitation(ctx, invitation); err != nil {
		t.Fatalf("CreateInvitation failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, "user1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := repo.GetUser(ctx, "user1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected user to be deleted, got %v", err)
	}
	if _, err := meetings.GetMeeting(ctx, "meeting1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected initiated meeting to be deleted, got %v", err)
	}
	if _, err := invitations.GetInvitation(ctx, "inv1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected meeting invitation to be deleted, got %v", err)
	}
}

func TestUserRepository_DeleteUser_NotFound(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	err := repo.DeleteUser(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DeleteAllUsers(t *testing.T) {
	repo, pool := setupUserRepositoryTest(t)
	ctx := context.Background()

	meetings := NewMeetingRepository(pool)

	if err := repo.CreateUser(ctx, persistence.User{ID: "user1", UserName: "alice", Email: "alice@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := meetings.CreateMeeting(ctx, persistence.Meeting{ID: "meeting1", MeetingName: "Standup", InitiatedBy: "user1", ProposedDatesAndTimes: "[]"}); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	if err := repo.DeleteAllUsers(ctx); err != nil {
		t.Fatalf("DeleteAllUsers failed: %v", err)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Expected 0 users, got %d", len(users))
	}
	remaining, err := meetings.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected 0 meetings after wipe, got %d", len(remaining))
	}
}
