package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/testutil"
)

func setupRefreshStore(t *testing.T) (*database.SQLiteStore, *database.Identity, *database.Identity) {
	t.Helper()
	env := testutil.SetupTestEnv(t)

	alice := env.RegisterTestUser(t, "alice", "alice@x.com", "password123")
	bob := env.RegisterTestUser(t, "bob", "bob@x.com", "password123")

	return env.DB, alice, bob
}

func futureExpiry() int64 {
	return time.Now().Add(time.Hour).Unix()
}

func TestCreateRefreshToken_Success(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	err := store.CreateRefreshToken(ctx, alice.ID, "token-1", futureExpiry())
	if err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}
}

func TestCreateRefreshToken_ReplacesPriorRows(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "token-1", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken token-1 failed: %v", err)
	}
	if err := store.CreateRefreshToken(ctx, alice.ID, "token-2", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken token-2 failed: %v", err)
	}

	// only the newest row survives
	count, err := store.CountRefreshTokensForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CountRefreshTokensForOwner failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 live token, got %d", count)
	}

	if _, err := store.GetRefreshToken(ctx, "token-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected token-1 gone, got err=%v", err)
	}
	if _, err := store.GetRefreshToken(ctx, "token-2"); err != nil {
		t.Errorf("expected token-2 present, got err=%v", err)
	}
}

func TestCreateRefreshToken_PerOwnerIsolation(t *testing.T) {
	t.Parallel()
	store, alice, bob := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "alice-token", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken for alice failed: %v", err)
	}
	if err := store.CreateRefreshToken(ctx, bob.ID, "bob-token", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken for bob failed: %v", err)
	}

	// bob's create must not displace alice's row
	if _, err := store.GetRefreshToken(ctx, "alice-token"); err != nil {
		t.Errorf("expected alice's token intact, got err=%v", err)
	}
}

func TestGetRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	expiry := futureExpiry()
	if err := store.CreateRefreshToken(ctx, alice.ID, "token-1", expiry); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	row, err := store.GetRefreshToken(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetRefreshToken failed: %v", err)
	}
	if row.OwnerID != alice.ID {
		t.Errorf("expected owner %d, got %d", alice.ID, row.OwnerID)
	}
	if row.Expiration != expiry {
		t.Errorf("expected expiration %d, got %d", expiry, row.Expiration)
	}
}

func TestGetRefreshToken_Unknown(t *testing.T) {
	t.Parallel()
	store, _, _ := setupRefreshStore(t)

	_, err := store.GetRefreshToken(context.Background(), "no-such-token")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeleteRefreshToken_Exists(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "token-1", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	deleted, err := store.DeleteRefreshToken(ctx, "token-1")
	if err != nil {
		t.Fatalf("DeleteRefreshToken failed: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}
}

func TestDeleteRefreshToken_NotExists(t *testing.T) {
	t.Parallel()
	store, _, _ := setupRefreshStore(t)

	deleted, err := store.DeleteRefreshToken(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("DeleteRefreshToken failed: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for unknown token")
	}
}

func TestRotateRefreshToken_Success(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "old-token", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	rotated, err := store.RotateRefreshToken(ctx, "old-token", alice.ID, "new-token", futureExpiry())
	if err != nil {
		t.Fatalf("RotateRefreshToken failed: %v", err)
	}
	if !rotated {
		t.Fatal("expected rotated=true")
	}

	// old row consumed, new row live
	if _, err := store.GetRefreshToken(ctx, "old-token"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected old token consumed, got err=%v", err)
	}
	if _, err := store.GetRefreshToken(ctx, "new-token"); err != nil {
		t.Errorf("expected new token present, got err=%v", err)
	}

	count, err := store.CountRefreshTokensForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CountRefreshTokensForOwner failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 live token after rotation, got %d", count)
	}
}

func TestRotateRefreshToken_AlreadyConsumed(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "old-token", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	rotated, err := store.RotateRefreshToken(ctx, "old-token", alice.ID, "winner-token", futureExpiry())
	if err != nil || !rotated {
		t.Fatalf("first rotation should win, got rotated=%v err=%v", rotated, err)
	}

	// second rotation of the same token loses and writes nothing
	rotated, err = store.RotateRefreshToken(ctx, "old-token", alice.ID, "loser-token", futureExpiry())
	if err != nil {
		t.Fatalf("RotateRefreshToken failed: %v", err)
	}
	if rotated {
		t.Fatal("expected rotated=false for consumed token")
	}

	if _, err := store.GetRefreshToken(ctx, "loser-token"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("loser's token must not be stored, got err=%v", err)
	}
	if _, err := store.GetRefreshToken(ctx, "winner-token"); err != nil {
		t.Errorf("winner's token must survive, got err=%v", err)
	}
}

func TestDeleteRefreshTokensForOwner_Idempotent(t *testing.T) {
	t.Parallel()
	store, alice, _ := setupRefreshStore(t)
	ctx := context.Background()

	if err := store.CreateRefreshToken(ctx, alice.ID, "token-1", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	// both calls succeed, second with zero rows present
	if err := store.DeleteRefreshTokensForOwner(ctx, alice.ID); err != nil {
		t.Fatalf("first DeleteRefreshTokensForOwner failed: %v", err)
	}
	if err := store.DeleteRefreshTokensForOwner(ctx, alice.ID); err != nil {
		t.Fatalf("second DeleteRefreshTokensForOwner failed: %v", err)
	}

	count, err := store.CountRefreshTokensForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CountRefreshTokensForOwner failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 live tokens, got %d", count)
	}
}
