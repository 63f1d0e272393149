package client_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"git.sr.ht/~mpalumbo/notevault/internal/testutil"
	"git.sr.ht/~mpalumbo/notevault/pkg/client"
)

func setupClient(t *testing.T) (*client.Client, *testutil.TestEnv) {
	t.Helper()
	env := testutil.SetupTestEnvWithRouter(t)
	server := httptest.NewServer(env.Router)
	t.Cleanup(server.Close)
	return client.New(server.URL), env
}

func TestClient_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	user, err := c.Register("alice", "alice@x.com", "Secure123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 || user.Email != "alice@x.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	if err := c.Login("alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestClient_LoginRejected(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	err := c.Login("ghost@x.com", "Secure123")
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_NoteLifecycle(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	if _, err := c.Register("alice", "alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Login("alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	note, err := c.CreateNote("from the client")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	updated, err := c.UpdateNote(note.ID, "rewritten")
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if updated.Content != "rewritten" {
		t.Errorf("unexpected note %+v", updated)
	}

	notes, err := c.Notes()
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	count, err := c.CountNotes()
	if err != nil {
		t.Fatalf("CountNotes failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	if err := c.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := c.Note(note.ID); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestClient_UnauthenticatedNotes(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	_, err := c.Notes()
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_RefreshRotates(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	if _, err := c.Register("alice", "alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Login("alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := c.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// the rotated credentials still work
	if _, err := c.CreateNote("after refresh"); err != nil {
		t.Fatalf("CreateNote after refresh failed: %v", err)
	}
}

func TestClient_LogoutRevokes(t *testing.T) {
	t.Parallel()
	c, _ := setupClient(t)

	if _, err := c.Register("alice", "alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Login("alice@x.com", "Secure123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := c.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// the pair is cleared, so the refresh retry cannot save us
	if _, err := c.Notes(); !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}
