package database

import (
	"context"
	"fmt"
)

func (s *SQLiteStore) InsertIdentity(
	ctx context.Context,
	username string,
	email string,
	secret []byte,
	role string,
) (
	*Identity,
	error,
) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO identity (username, email, secret, role)
		VALUES (?1, ?2, ?3, ?4);`,
		username,
		email,
		secret,
		role,
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return nil, fmt.Errorf("%w: email taken", ErrUniqueConstraint)
		}
		return nil, fmt.Errorf("couldn't insert into identity: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("couldn't read new identity id: %v", err)
	}

	return &Identity{
		ID:       id,
		Username: username,
		Email:    email,
		Secret:   secret,
		Role:     role,
	}, nil
}

func (s *SQLiteStore) GetIdentityByEmail(
	ctx context.Context,
	email string,
) (
	*Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, secret, role
		FROM identity
		WHERE email=?1;`,
		email,
	)

	identity := &Identity{}
	err := row.Scan(&identity.ID, &identity.Username, &identity.Email, &identity.Secret, &identity.Role)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *SQLiteStore) GetIdentityByID(
	ctx context.Context,
	id int64,
) (
	*Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, secret, role
		FROM identity
		WHERE id=?1;`,
		id,
	)

	identity := &Identity{}
	err := row.Scan(&identity.ID, &identity.Username, &identity.Email, &identity.Secret, &identity.Role)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// DeleteIdentity removes an identity together with its refresh tokens
// and notes. All three deletes commit or none do.
func (s *SQLiteStore) DeleteIdentity(
	ctx context.Context,
	id int64,
) (
	bool,
	error,
) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("couldn't begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM refresh WHERE owner=?1;`, id); err != nil {
		return false, fmt.Errorf("couldn't delete refresh tokens for identity: %v", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM note WHERE owner=?1;`, id); err != nil {
		return false, fmt.Errorf("couldn't delete notes for identity: %v", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM identity WHERE id=?1;`, id)
	if err != nil {
		return false, fmt.Errorf("couldn't delete from identity: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("couldn't commit identity delete: %v", err)
	}

	return !resultsEmpty(result), nil
}
