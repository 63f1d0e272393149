// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/api"
	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/service"
	"git.sr.ht/~mpalumbo/notevault/internal/tokens"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var testSigningSecret = []byte("testutil-signing-secret")

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB      *database.SQLiteStore
	Service *service.Service
	Codec   *tokens.Codec
	Router  http.Handler
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	return SetupTestEnvTTL(t, 15*time.Minute, time.Hour)
}

// SetupTestEnvTTL is SetupTestEnv with explicit token lifetimes, for
// tests that need already-expired credentials.
func SetupTestEnvTTL(
	t *testing.T,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *TestEnv {
	t.Helper()

	db, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	codec := tokens.NewCodec(testSigningSecret, accessTTL)

	// MinCost keeps hashing out of the test runtime
	svc := service.New(db, db, db, codec, refreshTTL, bcrypt.MinCost, zerolog.Nop())

	return &TestEnv{
		DB:      db,
		Service: svc,
		Codec:   codec,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, zerolog.Nop())
	env.Router = a.Router()
	return env
}

// RegisterTestUser creates a test user and returns its identity
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	username string,
	email string,
	password string,
) *database.Identity {
	t.Helper()
	identity, err := env.Service.Register(context.Background(), username, email, password)
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return identity
}

// LoginTestUser logs a registered user in and returns the token pair
func (env *TestEnv) LoginTestUser(
	t *testing.T,
	email string,
	password string,
) *service.TokenPair {
	t.Helper()
	pair, err := env.Service.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return pair
}

// CreateTestNote stores a note owned by the given user
func (env *TestEnv) CreateTestNote(
	t *testing.T,
	email string,
	content string,
) *database.Note {
	t.Helper()
	note, err := env.Service.CreateNote(context.Background(), email, content)
	if err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

// IssueTestAccessToken signs an access token outside the login flow
func (env *TestEnv) IssueTestAccessToken(
	t *testing.T,
	subject string,
	role string,
) string {
	t.Helper()
	token, err := env.Codec.Issue(subject, role)
	if err != nil {
		t.Fatalf("failed to issue test access token: %v", err)
	}
	return token
}
