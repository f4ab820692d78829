package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/yamp/internal/persistence"
)

func setupSessionRepositoryTest(t *testing.T) *SessionRepository {
	t.Helper()
	return NewSessionRepository(newTestPool(t))
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo := setupSessionRepositoryTest(t)
	ctx := context.Background()

	session := persistence.Session{
		ID:        "sess1",
		UserID:    "user1",
		Token:     "token-abc",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	created, err := repo.CreateSession(ctx, session)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected created timestamp to be populated")
	}

	retrieved, err := repo.GetSession(ctx, "token-abc")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved.UserID != "user1" {
		t.Errorf("Expected user 'user1', got '%s'", retrieved.UserID)
	}
	if retrieved.RevokedAt != nil {
		t.Errorf("Expected a fresh session to be unrevoked, got %v", retrieved.RevokedAt)
	}
}

func TestSessionRepository_CreateSession_DuplicateToken(t *testing.T) {
	repo := setupSessionRepositoryTest(t)
	ctx := context.Background()

	session := persistence.Session{ID: "sess1", UserID: "user1", Token: "token-abc", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	if _, err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("First CreateSession failed: %v", err)
	}

	session.ID = "sess2"
	_, err := repo.CreateSession(ctx, session)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for reused token, got %v", err)
	}
}

func TestSessionRepository_RevokeSession(t *testing.T) {
	repo := setupSessionRepositoryTest(t)
	ctx := context.Background()

	session := persistence.Session{ID: "sess1", UserID: "user1", Token: "token-abc", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	if _, err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	revokedAt := time.Now().UTC()
	revoked, err := repo.RevokeSession(ctx, "token-abc", revokedAt)
	if err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}
	if revoked.RevokedAt == nil {
		t.Fatal("Expected revoked timestamp to be set")
	}
	if !revoked.RevokedAt.Equal(revokedAt) {
		t.Errorf("Expected revoked at %v, got %v", revokedAt, *revoked.RevokedAt)
	}
}

func TestSessionRepository_RevokeSession_NotFound(t *testing.T) {
	repo := setupSessionRepositoryTest(t)

	_, err := repo.RevokeSession(context.Background(), "missing", time.Now().UTC())
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_DeleteExpiredSessions(t *testing.T) {
	repo := setupSessionRepositoryTest(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, session := range []persistence.Session{
		{ID: "sess1", UserID: "user1", Token: "expired", ExpiresAt: now.Add(-time.Hour)},
		{ID: "sess2", UserID: "user1", Token: "live", ExpiresAt: now.Add(time.Hour)},
	} {
		if _, err := repo.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed for %s: %v", session.ID, err)
		}
	}

	if err := repo.DeleteExpiredSessions(ctx, now); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	if _, err := repo.GetSession(ctx, "expired"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected expired session to be gone, got %v", err)
	}
	if _, err := repo.GetSession(ctx, "live"); err != nil {
		t.Errorf("Expected live session to survive, got %v", err)
	}
}
