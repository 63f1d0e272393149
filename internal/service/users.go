package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
)

// User returns the identity with the given id, for the public view.
func (s *Service) User(
	ctx context.Context,
	id int64,
) (
	*database.Identity,
	error,
) {
	identity, err := s.identities.GetIdentityByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}
	return identity, nil
}

// DeleteUser removes an identity along with its refresh tokens and
// notes. Role enforcement happens at the API boundary; this method
// only cares that the target exists.
func (s *Service) DeleteUser(
	ctx context.Context,
	id int64,
) error {
	deleted, err := s.identities.DeleteIdentity(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete identity: %v", ErrInternal, err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
