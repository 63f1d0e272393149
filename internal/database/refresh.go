package database

import (
	"context"
	"fmt"
)

// CreateRefreshToken stores a fresh token for an identity, replacing
// any prior rows so at most one live token exists per identity.
func (s *SQLiteStore) CreateRefreshToken(
	ctx context.Context,
	ownerID int64,
	token string,
	expiration int64,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("couldn't begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM refresh
		WHERE owner=?1;`,
		ownerID,
	); err != nil {
		return fmt.Errorf("couldn't clear refresh tokens for owner: %v", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refresh (owner, token, expiration)
		VALUES (?1, ?2, ?3);`,
		ownerID,
		token,
		expiration,
	); err != nil {
		return fmt.Errorf("couldn't insert into refresh: %v", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetRefreshToken(
	ctx context.Context,
	token string,
) (
	*RefreshToken,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, token, expiration
		FROM refresh
		WHERE token=?1;`,
		token,
	)

	rt := &RefreshToken{}
	err := row.Scan(&rt.ID, &rt.OwnerID, &rt.Token, &rt.Expiration)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteRefreshToken removes a single token row and reports whether a
// row was actually removed. The bool is the consume decision: of two
// racing callers presenting the same token, exactly one sees true.
func (s *SQLiteStore) DeleteRefreshToken(
	ctx context.Context,
	token string,
) (
	bool,
	error,
) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM refresh
		WHERE token=?1;`,
		token,
	)
	if err != nil {
		return false, fmt.Errorf("couldn't delete from refresh: %v", err)
	}

	deleted := !resultsEmpty(result)
	return deleted, nil
}

// RotateRefreshToken atomically consumes oldToken and stores newToken
// for the same owner. If oldToken is no longer present (already
// consumed by a concurrent rotation, or revoked) nothing is written
// and rotated is false. Consume and re-insert commit together, so an
// aborted rotation never leaves the owner without a stored token.
func (s *SQLiteStore) RotateRefreshToken(
	ctx context.Context,
	oldToken string,
	ownerID int64,
	newToken string,
	expiration int64,
) (
	bool,
	error,
) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("couldn't begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM refresh
		WHERE token=?1;`,
		oldToken,
	)
	if err != nil {
		return false, fmt.Errorf("couldn't delete from refresh: %v", err)
	}
	if resultsEmpty(result) {
		return false, nil
	}

	// clear any stragglers before inserting the replacement
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM refresh
		WHERE owner=?1;`,
		ownerID,
	); err != nil {
		return false, fmt.Errorf("couldn't clear refresh tokens for owner: %v", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refresh (owner, token, expiration)
		VALUES (?1, ?2, ?3);`,
		ownerID,
		newToken,
		expiration,
	); err != nil {
		return false, fmt.Errorf("couldn't insert into refresh: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("couldn't commit rotation: %v", err)
	}

	return true, nil
}

// DeleteRefreshTokensForOwner removes every token row for an identity.
// Deleting zero rows is success, so revocation is idempotent.
func (s *SQLiteStore) DeleteRefreshTokensForOwner(
	ctx context.Context,
	ownerID int64,
) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM refresh
		WHERE owner=?1;`,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("couldn't delete from refresh: %v", err)
	}
	return nil
}

// CountRefreshTokensForOwner reports the number of live token rows for
// an identity. Used by tests asserting the one-live-token invariant.
func (s *SQLiteStore) CountRefreshTokensForOwner(
	ctx context.Context,
	ownerID int64,
) (
	int,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM refresh
		WHERE owner=?1;`,
		ownerID,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("couldn't count refresh tokens: %v", err)
	}
	return count, nil
}
