package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new identity. Email comparison is case-sensitive
// and uniqueness is backed by the store's unique index. Accounts whose
// email contains "admin" register with the admin role.
func (s *Service) Register(
	ctx context.Context,
	username string,
	email string,
	password string,
) (
	*database.Identity,
	error,
) {
	_, err := s.identities.GetIdentityByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: failed to check for existing identity: %v", ErrInternal, err)
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	identity, err := s.identities.InsertIdentity(ctx, username, email, hashPass, roleForEmail(email))
	if err != nil {
		// a racing registration can slip past the lookup above and
		// lose to the unique index instead
		if errors.Is(err, database.ErrUniqueConstraint) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("%w: failed to insert identity: %v", ErrInternal, err)
	}

	return identity, nil
}

func roleForEmail(email string) string {
	if strings.Contains(email, "admin") {
		return RoleAdmin
	}
	return RoleUser
}
