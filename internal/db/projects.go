package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dori/projecthub/internal/model"
	"github.com/google/uuid"
)

// CreateProjectInput carries the caller-supplied fields for a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	DueDate     *time.Time
}

// UpdateProjectInput carries a partial project update. Nil fields are left
// unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	DueDate     *time.Time
}

// ProjectFilter narrows project listings by due-date range.
type ProjectFilter struct {
	DueFrom *time.Time
	DueTo   *time.Time
}

// CreateProject creates a new project owned by userID.
func (db *DB) CreateProject(userID string, in CreateProjectInput) (*model.Project, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if len(name) > model.MaxProjectNameLen {
		return nil, validationErr("name", "is too long")
	}
	if len(in.Description) > model.MaxProjectDescriptionLen {
		return nil, validationErr("description", "is too long")
	}

	id := uuid.New().String()
	now := time.Now()

	_, err := db.Exec(`
		INSERT INTO projects (id, user_id, name, description, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, userID, name, nullString(in.Description), nullTime(in.DueDate), now, now)
	if err != nil {
		return nil, err
	}

	return &model.Project{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: in.Description,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetProject returns a single project by ID, restricted to the owner.
func (db *DB) GetProject(userID, id string) (*model.Project, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var p model.Project
	var description, dueDate *string

	err := db.QueryRow(`
		SELECT p.id, p.user_id, p.name, p.description, p.due_date, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM tasks WHERE project_id = p.id) AS task_count,
		       (SELECT COUNT(*) FROM tasks WHERE project_id = p.id AND completed = 1) AS completed_count
		FROM projects p
		WHERE p.id = ? AND p.user_id = ?
	`, id, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &description, &dueDate,
		&p.CreatedAt, &p.UpdatedAt, &p.TaskCount, &p.CompletedCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if description != nil {
		p.Description = *description
	}
	p.DueDate = parseTime(dueDate)

	return &p, nil
}

// ListProjects returns all projects owned by userID, newest first.
func (db *DB) ListProjects(userID string, filter ProjectFilter) ([]model.Project, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.due_date, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM tasks WHERE project_id = p.id) AS task_count,
		       (SELECT COUNT(*) FROM tasks WHERE project_id = p.id AND completed = 1) AS completed_count
		FROM projects p
		WHERE p.user_id = ?`
	args := []interface{}{userID}

	if filter.DueFrom != nil {
		query += ` AND p.due_date >= ?`
		args = append(args, filter.DueFrom.Format(time.RFC3339))
	}
	if filter.DueTo != nil {
		query += ` AND p.due_date <= ?`
		args = append(args, filter.DueTo.Format(time.RFC3339))
	}

	query += ` ORDER BY p.created_at DESC, p.id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var description, dueDate *string
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &description, &dueDate,
			&p.CreatedAt, &p.UpdatedAt, &p.TaskCount, &p.CompletedCount,
		)
		if err != nil {
			return nil, err
		}
		if description != nil {
			p.Description = *description
		}
		p.DueDate = parseTime(dueDate)
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject applies a partial update and re-stamps updated_at. Only
// supplied fields change; the owner check happens in the same statement.
func (db *DB) UpdateProject(userID, id string, in UpdateProjectInput) (*model.Project, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationErr("name", "must not be empty")
		}
		if len(name) > model.MaxProjectNameLen {
			return nil, validationErr("name", "is too long")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if in.Description != nil {
		if len(*in.Description) > model.MaxProjectDescriptionLen {
			return nil, validationErr("description", "is too long")
		}
		sets = append(sets, "description = ?")
		args = append(args, nullString(*in.Description))
	}
	if in.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, in.DueDate.Format(time.RFC3339))
	}

	args = append(args, id, userID)
	res, err := db.Exec(`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return db.GetProject(userID, id)
}

// DeleteProject deletes a project; tasks and notes go with it via the
// cascading foreign keys.
func (db *DB) DeleteProject(userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := db.Exec(`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectExists reports whether the project exists under userID's ownership.
func (db *DB) ProjectExists(userID, id string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}

	var one int
	err := db.QueryRow(`SELECT 1 FROM projects WHERE id = ? AND user_id = ?`, id, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountProjects returns the number of projects matching the filter.
func (db *DB) CountProjects(userID string, filter ProjectFilter) (int, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}

	query := `SELECT COUNT(*) FROM projects WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.DueFrom != nil {
		query += ` AND due_date >= ?`
		args = append(args, filter.DueFrom.Format(time.RFC3339))
	}
	if filter.DueTo != nil {
		query += ` AND due_date <= ?`
		args = append(args, filter.DueTo.Format(time.RFC3339))
	}

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// Shared scan helpers

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func parseTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, *s); err == nil {
		return &parsed
	}
	return nil
}
