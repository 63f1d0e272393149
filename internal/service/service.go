// Package service implements the business logic layer for the notevault
// server: credential verification, token issuance and rotation, and
// ownership-guarded note operations.
package service

import (
	"errors"
	"fmt"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/tokens"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrNotOwner           = errors.New("not the resource owner")
	ErrInternal           = errors.New("internal error")
)

// ErrTokenExpired is reported to callers as ErrTokenInvalid; the
// distinct value exists because expiry additionally purges the stored
// row, and tests assert on the purge.
var ErrTokenExpired = fmt.Errorf("%w: expired", ErrTokenInvalid)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// TokenPair is the result of a successful login or rotation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service coordinates authentication, registration, token rotation,
// and note operations. Persistence goes through the store interfaces;
// access token signing goes through the codec.
type Service struct {
	identities IdentityStore
	refresh    RefreshStore
	notes      NoteStore
	codec      *tokens.Codec
	refreshTTL time.Duration
	bcryptCost int
	audit      zerolog.Logger
}

func New(
	identities IdentityStore,
	refresh RefreshStore,
	notes NoteStore,
	codec *tokens.Codec,
	refreshTTL time.Duration,
	bcryptCost int,
	logger zerolog.Logger,
) *Service {
	return &Service{
		identities: identities,
		refresh:    refresh,
		notes:      notes,
		codec:      codec,
		refreshTTL: refreshTTL,
		bcryptCost: bcryptCost,
		audit:      logger.With().Str("component", "audit").Logger(),
	}
}

// Codec exposes the access token codec for the request gate.
func (s *Service) Codec() *tokens.Codec {
	return s.codec
}
