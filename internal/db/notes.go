package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dori/projecthub/internal/model"
	"github.com/google/uuid"
)

// CreateNoteInput carries the caller-supplied fields for a new note.
// Title is optional.
type CreateNoteInput struct {
	TaskID  string
	Title   string
	Content string
}

// UpdateNoteInput carries a partial note update. Nil fields are left
// unchanged.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// NoteFilter narrows note listings. Contains matches the content as a
// case-insensitive substring.
type NoteFilter struct {
	TaskID   string
	Contains string
}

// CreateNote creates a new note under a task the user owns (transitively
// through its project).
func (db *DB) CreateNote(userID string, in CreateNoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, validationErr("content", "must not be empty")
	}
	if len(content) > model.MaxNoteContentLen {
		return nil, validationErr("content", "is too long")
	}
	if len(in.Title) > model.MaxNoteTitleLen {
		return nil, validationErr("title", "is too long")
	}

	ok, err := db.TaskExists(userID, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	id := uuid.New().String()
	now := time.Now()

	_, err = db.Exec(`
		INSERT INTO notes (id, task_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, in.TaskID, nullString(in.Title), content, now, now)
	if err != nil {
		return nil, err
	}

	return &model.Note{
		ID:        id,
		TaskID:    in.TaskID,
		Title:     in.Title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetNote returns a single note by ID, restricted through the ownership
// chain note -> task -> project -> user.
func (db *DB) GetNote(userID, id string) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var n model.Note
	var title *string

	err := db.QueryRow(`
		SELECT n.id, n.task_id, n.title, n.content, n.created_at, n.updated_at
		FROM notes n
		JOIN tasks t ON t.id = n.task_id
		JOIN projects p ON p.id = t.project_id
		WHERE n.id = ? AND p.user_id = ?
	`, id, userID).Scan(&n.ID, &n.TaskID, &title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if title != nil {
		n.Title = *title
	}

	return &n, nil
}

// ListNotes returns notes owned by userID, newest first.
func (db *DB) ListNotes(userID string, filter NoteFilter) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	query := `
		SELECT n.id, n.task_id, n.title, n.content, n.created_at, n.updated_at
		FROM notes n
		JOIN tasks t ON t.id = n.task_id
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`
	args := []interface{}{userID}

	if filter.TaskID != "" {
		query += ` AND n.task_id = ?`
		args = append(args, filter.TaskID)
	}
	if filter.Contains != "" {
		// instr instead of LIKE so the term needs no wildcard escaping
		query += ` AND instr(lower(n.content), lower(?)) > 0`
		args = append(args, filter.Contains)
	}

	query += ` ORDER BY n.created_at DESC, n.id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		var title *string
		if err := rows.Scan(&n.ID, &n.TaskID, &title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		if title != nil {
			n.Title = *title
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// SearchNotes returns all of the user's notes whose content contains term,
// case-insensitively.
func (db *DB) SearchNotes(userID, term string) ([]model.Note, error) {
	return db.ListNotes(userID, NoteFilter{Contains: term})
}

// UpdateNote applies a partial update and re-stamps updated_at.
func (db *DB) UpdateNote(userID, id string, in UpdateNoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if in.Title != nil {
		if len(*in.Title) > model.MaxNoteTitleLen {
			return nil, validationErr("title", "is too long")
		}
		sets = append(sets, "title = ?")
		args = append(args, nullString(*in.Title))
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, validationErr("content", "must not be empty")
		}
		if len(content) > model.MaxNoteContentLen {
			return nil, validationErr("content", "is too long")
		}
		sets = append(sets, "content = ?")
		args = append(args, content)
	}

	args = append(args, id, userID)
	res, err := db.Exec(`
		UPDATE notes SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND task_id IN (
			SELECT t.id FROM tasks t
			JOIN projects p ON p.id = t.project_id
			WHERE p.user_id = ?
		)
	`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return db.GetNote(userID, id)
}

// DeleteNote deletes a single note.
func (db *DB) DeleteNote(userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := db.Exec(`
		DELETE FROM notes
		WHERE id = ? AND task_id IN (
			SELECT t.id FROM tasks t
			JOIN projects p ON p.id = t.project_id
			WHERE p.user_id = ?
		)
	`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// NoteExists reports whether the note exists under userID's ownership.
func (db *DB) NoteExists(userID, id string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}

	var one int
	err := db.QueryRow(`
		SELECT 1 FROM notes n
		JOIN tasks t ON t.id = n.task_id
		JOIN projects p ON p.id = t.project_id
		WHERE n.id = ? AND p.user_id = ?
	`, id, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountNotes returns the number of notes matching the filter.
func (db *DB) CountNotes(userID string, filter NoteFilter) (int, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}

	query := `
		SELECT COUNT(*)
		FROM notes n
		JOIN tasks t ON t.id = n.task_id
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`
	args := []interface{}{userID}

	if filter.TaskID != "" {
		query += ` AND n.task_id = ?`
		args = append(args, filter.TaskID)
	}
	if filter.Contains != "" {
		query += ` AND instr(lower(n.content), lower(?)) > 0`
		args = append(args, filter.Contains)
	}

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}
