package service

import (
	"context"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
)

// IdentityStore handles persistence of user identity data
type IdentityStore interface {
	InsertIdentity(ctx context.Context, username, email string, secret []byte, role string) (*database.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*database.Identity, error)
	GetIdentityByID(ctx context.Context, id int64) (*database.Identity, error)
	DeleteIdentity(ctx context.Context, id int64) (deleted bool, err error)
}

// RefreshStore handles persistence of refresh tokens
type RefreshStore interface {
	CreateRefreshToken(ctx context.Context, ownerID int64, token string, expiration int64) error
	GetRefreshToken(ctx context.Context, token string) (*database.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) (deleted bool, err error)
	RotateRefreshToken(ctx context.Context, oldToken string, ownerID int64, newToken string, expiration int64) (rotated bool, err error)
	DeleteRefreshTokensForOwner(ctx context.Context, ownerID int64) error
}

// NoteStore handles persistence of notes
type NoteStore interface {
	InsertNote(ctx context.Context, ownerID int64, content string) (*database.Note, error)
	GetNote(ctx context.Context, id int64) (*database.Note, error)
	NotesForOwner(ctx context.Context, ownerID int64) ([]database.Note, error)
	CountNotesForOwner(ctx context.Context, ownerID int64) (int, error)
	UpdateNoteContent(ctx context.Context, id int64, content string) error
	DeleteNote(ctx context.Context, id int64) (deleted bool, err error)
}
