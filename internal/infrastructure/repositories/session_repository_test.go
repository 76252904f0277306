package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

func newSessionRepo(t *testing.T) (domain.SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionRepository(client, time.Hour), mr
}

func TestSessionRoundTrip(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_abc",
		UserID:    "user-1",
		Email:     "ani@example.com",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, "sess_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != "user-1" || found.Email != "ani@example.com" {
		t.Errorf("unexpected session: %+v", found)
	}
}

func TestSessionNotFound(t *testing.T) {
	repo, _ := newSessionRepo(t)

	_, err := repo.FindByID(context.Background(), "sess_missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionExpiredByPayload(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()

	// The stored expiry has passed even though the Redis key still lives.
	session := &domain.Session{
		ID:        "sess_old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_old"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}

	// The expired entry is removed on read.
	if _, err := repo.FindByID(ctx, "sess_old"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after cleanup", err)
	}
}

func TestSessionExpiredByTTL(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_ttl",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := repo.FindByID(ctx, "sess_ttl"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after TTL", err)
	}
}

func TestSessionDeleteIdempotent(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{ID: "sess_del", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, "sess_del"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Deleting again, and deleting something that never existed, succeed.
	if err := repo.Delete(ctx, "sess_del"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "sess_never"); err != nil {
		t.Errorf("deleting absent session failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_del"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after delete", err)
	}
}
