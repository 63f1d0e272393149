package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"git.sr.ht/~mpalumbo/notevault/internal/database"
)

// CreateNote stores a new note owned by the subject.
func (s *Service) CreateNote(
	ctx context.Context,
	email string,
	content string,
) (
	*database.Note,
	error,
) {
	identity, err := s.subject(ctx, email)
	if err != nil {
		return nil, err
	}

	note, err := s.notes.InsertNote(ctx, identity.ID, content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert note: %v", ErrInternal, err)
	}
	return note, nil
}

// Notes lists the subject's own notes.
func (s *Service) Notes(
	ctx context.Context,
	email string,
) (
	[]database.Note,
	error,
) {
	identity, err := s.subject(ctx, email)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.NotesForOwner(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list notes: %v", ErrInternal, err)
	}
	return notes, nil
}

// CountNotes reports how many notes the subject owns.
func (s *Service) CountNotes(
	ctx context.Context,
	email string,
) (
	int,
	error,
) {
	identity, err := s.subject(ctx, email)
	if err != nil {
		return 0, err
	}

	count, err := s.notes.CountNotesForOwner(ctx, identity.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count notes: %v", ErrInternal, err)
	}
	return count, nil
}

// Note returns a single note after the ownership check.
func (s *Service) Note(
	ctx context.Context,
	email string,
	id int64,
) (
	*database.Note,
	error,
) {
	_, note, err := s.ownedNote(ctx, email, id)
	return note, err
}

// UpdateNote replaces a note's content after the ownership check.
func (s *Service) UpdateNote(
	ctx context.Context,
	email string,
	id int64,
	content string,
) (
	*database.Note,
	error,
) {
	_, note, err := s.ownedNote(ctx, email, id)
	if err != nil {
		return nil, err
	}

	if err := s.notes.UpdateNoteContent(ctx, id, content); err != nil {
		return nil, fmt.Errorf("%w: failed to update note: %v", ErrInternal, err)
	}
	note.Content = content
	return note, nil
}

// DeleteNote removes a note after the ownership check.
func (s *Service) DeleteNote(
	ctx context.Context,
	email string,
	id int64,
) error {
	_, _, err := s.ownedNote(ctx, email, id)
	if err != nil {
		return err
	}

	if _, err := s.notes.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("%w: failed to delete note: %v", ErrInternal, err)
	}
	return nil
}

// ownedNote resolves the subject and the note and enforces ownership.
// Existence is checked before ownership: a missing note is
// ErrNoteNotFound no matter who asks, and only an existing note owned
// by someone else is ErrNotOwner. A violation is recorded in the
// security audit log with the principal, note id, and owner id.
func (s *Service) ownedNote(
	ctx context.Context,
	email string,
	id int64,
) (
	*database.Identity,
	*database.Note,
	error,
) {
	identity, err := s.subject(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	note, err := s.notes.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNoteNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to retrieve note: %v", ErrInternal, err)
	}

	if note.OwnerID != identity.ID {
		s.audit.Warn().
			Str("principal", identity.Email).
			Int64("principal_id", identity.ID).
			Int64("note_id", note.ID).
			Int64("owner_id", note.OwnerID).
			Msg("ownership violation")
		return nil, nil, ErrNotOwner
	}

	return identity, note, nil
}

// subject resolves the authenticated principal's identity row. The
// email comes from verified token claims, so a missing row means the
// account was deleted after issuance.
func (s *Service) subject(
	ctx context.Context,
	email string,
) (
	*database.Identity,
	error,
) {
	identity, err := s.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}
	return identity, nil
}
