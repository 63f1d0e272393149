package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"git.sr.ht/~mpalumbo/notevault/internal/tokens"
)

// Rotate exchanges a refresh token for a new access/refresh pair,
// consuming the presented token. The consume is an atomic conditional
// delete: when two rotations race on the same token, exactly one wins
// and the other observes ErrTokenInvalid. Identity state is re-read
// here, so a role change takes effect on the next rotation.
func (s *Service) Rotate(
	ctx context.Context,
	refreshToken string,
) (
	*TokenPair,
	error,
) {
	row, err := s.refresh.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: failed to look up refresh token: %v", ErrInternal, err)
	}

	if row.Expiration < time.Now().Unix() {
		// lazy purge: an expired row is dead weight either way
		if _, err := s.refresh.DeleteRefreshToken(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("%w: failed to purge expired refresh token: %v", ErrInternal, err)
		}
		return nil, ErrTokenExpired
	}

	identity, err := s.identities.GetIdentityByID(ctx, row.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: failed to retrieve token owner: %v", ErrInternal, err)
	}

	newRefreshToken := tokens.NewRefreshToken()
	expiration := time.Now().Add(s.refreshTTL).Unix()
	rotated, err := s.refresh.RotateRefreshToken(ctx, refreshToken, identity.ID, newRefreshToken, expiration)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to rotate refresh token: %v", ErrInternal, err)
	}
	if !rotated {
		return nil, ErrTokenInvalid
	}

	accessToken, err := s.codec.Issue(identity.Email, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue access token: %v", ErrInternal, err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes every refresh token held by the subject. Revoking
// when none exist is success, so repeated logouts never error.
func (s *Service) Logout(
	ctx context.Context,
	email string,
) error {
	identity, err := s.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// subject vanished since the token was issued; nothing to revoke
			return nil
		}
		return fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}

	if err := s.refresh.DeleteRefreshTokensForOwner(ctx, identity.ID); err != nil {
		return fmt.Errorf("%w: failed to revoke refresh tokens: %v", ErrInternal, err)
	}
	return nil
}
