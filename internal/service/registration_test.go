package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/service"
	"git.sr.ht/~mpalumbo/notevault/internal/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	identity, err := env.Service.Register(context.Background(), "alice", "alice@x.com", "Secure123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if identity.Role != service.RoleUser {
		t.Errorf("expected role user, got %s", identity.Role)
	}
	if string(identity.Secret) == "Secure123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	if _, err := env.Service.Register(ctx, "alice", "alice@x.com", "Secure123"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := env.Service.Register(ctx, "alice2", "alice@x.com", "Other456")
	if !errors.Is(err, service.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

// blindIdentityStore never sees existing rows during the duplicate
// lookup, reproducing the window where two registrations interleave
// and the second insert loses to the unique index instead.
type blindIdentityStore struct {
	service.IdentityStore
}

func (b blindIdentityStore) GetIdentityByEmail(
	ctx context.Context,
	email string,
) (
	*database.Identity,
	error,
) {
	return nil, sql.ErrNoRows
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.RegisterTestUser(t, "alice", "alice@x.com", "Secure123")

	racer := service.New(
		blindIdentityStore{env.DB}, env.DB, env.DB,
		env.Codec, time.Hour, bcrypt.MinCost, zerolog.Nop(),
	)
	_, err := racer.Register(ctx, "alice2", "alice@x.com", "Other456")
	if !errors.Is(err, service.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists from losing insert, got %v", err)
	}
}

func TestRegister_AdminRole(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	identity, err := env.Service.Register(context.Background(), "root", "admin@x.com", "Secure123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if identity.Role != service.RoleAdmin {
		t.Errorf("expected role admin, got %s", identity.Role)
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	env.RegisterTestUser(t, "alice", "alice@x.com", "Secure123")

	if _, err := env.Service.Login(context.Background(), "alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Login after Register failed: %v", err)
	}
}
