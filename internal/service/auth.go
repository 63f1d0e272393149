package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies credentials and issues a fresh access/refresh pair.
// Any prior refresh token for the identity is replaced. Unknown email
// and wrong password both surface as ErrInvalidCredentials.
func (s *Service) Login(
	ctx context.Context,
	email string,
	password string,
) (
	*TokenPair,
	error,
) {
	identity, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.issuePair(ctx, identity)
}

func (s *Service) authenticate(
	ctx context.Context,
	email string,
	password string,
) (
	*database.Identity,
	error,
) {
	identity, err := s.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(identity.Secret, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identity, nil
}

// issuePair mints an access token from current identity state and
// stores a new refresh token, displacing previous rows for the owner.
func (s *Service) issuePair(
	ctx context.Context,
	identity *database.Identity,
) (
	*TokenPair,
	error,
) {
	accessToken, err := s.codec.Issue(identity.Email, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue access token: %v", ErrInternal, err)
	}

	refreshToken := tokens.NewRefreshToken()
	expiration := time.Now().Add(s.refreshTTL).Unix()
	if err := s.refresh.CreateRefreshToken(ctx, identity.ID, refreshToken, expiration); err != nil {
		return nil, fmt.Errorf("%w: failed to store refresh token: %v", ErrInternal, err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
