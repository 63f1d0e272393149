package database_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/testutil"
)

func TestInsertIdentity_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	identity, err := env.DB.InsertIdentity(ctx, "alice", "alice@x.com", []byte("digest"), "user")
	if err != nil {
		t.Fatalf("InsertIdentity failed: %v", err)
	}
	if identity.ID == 0 {
		t.Error("expected a non-zero id")
	}
}

func TestInsertIdentity_DuplicateEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	if _, err := env.DB.InsertIdentity(ctx, "alice", "alice@x.com", []byte("digest"), "user"); err != nil {
		t.Fatalf("InsertIdentity failed: %v", err)
	}

	// email is backed by a unique index
	_, err := env.DB.InsertIdentity(ctx, "alice2", "alice@x.com", []byte("digest"), "user")
	if !errors.Is(err, database.ErrUniqueConstraint) {
		t.Fatalf("expected ErrUniqueConstraint, got %v", err)
	}
}

func TestGetIdentityByEmail_CaseSensitive(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	if _, err := env.DB.InsertIdentity(ctx, "alice", "alice@x.com", []byte("digest"), "user"); err != nil {
		t.Fatalf("InsertIdentity failed: %v", err)
	}

	if _, err := env.DB.GetIdentityByEmail(ctx, "alice@x.com"); err != nil {
		t.Fatalf("GetIdentityByEmail failed: %v", err)
	}

	// comparison key is case-sensitive
	if _, err := env.DB.GetIdentityByEmail(ctx, "Alice@x.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for different casing, got %v", err)
	}
}

func TestGetIdentityByID_RoundTrip(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	inserted, err := env.DB.InsertIdentity(ctx, "alice", "alice@x.com", []byte("digest"), "admin")
	if err != nil {
		t.Fatalf("InsertIdentity failed: %v", err)
	}

	identity, err := env.DB.GetIdentityByID(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetIdentityByID failed: %v", err)
	}
	if identity.Email != "alice@x.com" || identity.Role != "admin" || identity.Username != "alice" {
		t.Errorf("unexpected identity row: %+v", identity)
	}
	if !strings.EqualFold(string(identity.Secret), "digest") {
		t.Errorf("secret not round-tripped: %q", identity.Secret)
	}
}

func TestDeleteIdentity_Cascades(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	alice := env.RegisterTestUser(t, "alice", "alice@x.com", "password123")
	env.CreateTestNote(t, "alice@x.com", "hello")
	if err := env.DB.CreateRefreshToken(ctx, alice.ID, "token-1", futureExpiry()); err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	deleted, err := env.DB.DeleteIdentity(ctx, alice.ID)
	if err != nil {
		t.Fatalf("DeleteIdentity failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}

	if _, err := env.DB.GetIdentityByID(ctx, alice.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected identity gone, got err=%v", err)
	}
	count, err := env.DB.CountRefreshTokensForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CountRefreshTokensForOwner failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected tokens removed with identity, got %d", count)
	}
	notes, err := env.DB.NotesForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("NotesForOwner failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected notes removed with identity, got %d", len(notes))
	}
}

func TestDeleteIdentity_NotExists(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	deleted, err := env.DB.DeleteIdentity(context.Background(), 12345)
	if err != nil {
		t.Fatalf("DeleteIdentity failed: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for unknown id")
	}
}
