package database

import (
	"context"
	"fmt"
)

func (s *SQLiteStore) InsertNote(
	ctx context.Context,
	ownerID int64,
	content string,
) (
	*Note,
	error,
) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO note (owner, content)
		VALUES (?1, ?2);`,
		ownerID,
		content,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't insert into note: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("couldn't read new note id: %v", err)
	}

	return &Note{ID: id, OwnerID: ownerID, Content: content}, nil
}

func (s *SQLiteStore) GetNote(
	ctx context.Context,
	id int64,
) (
	*Note,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, content
		FROM note
		WHERE id=?1;`,
		id,
	)

	note := &Note{}
	err := row.Scan(&note.ID, &note.OwnerID, &note.Content)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *SQLiteStore) NotesForOwner(
	ctx context.Context,
	ownerID int64,
) (
	[]Note,
	error,
) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, content
		FROM note
		WHERE owner=?1
		ORDER BY id;`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query notes: %v", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		note := Note{}
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Content); err != nil {
			return nil, fmt.Errorf("couldn't scan note: %v", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read notes: %v", err)
	}
	return notes, nil
}

func (s *SQLiteStore) CountNotesForOwner(
	ctx context.Context,
	ownerID int64,
) (
	int,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM note
		WHERE owner=?1;`,
		ownerID,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("couldn't count notes: %v", err)
	}
	return count, nil
}

func (s *SQLiteStore) UpdateNoteContent(
	ctx context.Context,
	id int64,
	content string,
) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE note
		SET content=?2
		WHERE id=?1;`,
		id,
		content,
	)
	if err != nil {
		return fmt.Errorf("couldn't update note: %v", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteNote(
	ctx context.Context,
	id int64,
) (
	bool,
	error,
) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM note
		WHERE id=?1;`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("couldn't delete from note: %v", err)
	}

	deleted := !resultsEmpty(result)
	return deleted, nil
}
