package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dori/projecthub/internal/model"
	"github.com/google/uuid"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// An empty Priority defaults to medium.
type CreateTaskInput struct {
	ProjectID string
	Name      string
	Priority  model.Priority
	DueDate   *time.Time
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Name      *string
	ProjectID *string
	Priority  *model.Priority
	Completed *bool
	DueDate   *time.Time
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	ProjectID string
	Priority  *model.Priority
	Completed *bool
	DueFrom   *time.Time
	DueTo     *time.Time
}

const taskColumns = `t.id, t.project_id, t.name, t.priority, t.completed, t.due_date, t.created_at, t.updated_at`

// CreateTask creates a new task under a project the user owns.
func (db *DB) CreateTask(userID string, in CreateTaskInput) (*model.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if len(name) > model.MaxTaskNameLen {
		return nil, validationErr("name", "is too long")
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, validationErr("priority", "is not a known level")
	}

	// The FK alone would catch a dangling project id, but not one owned by
	// someone else.
	ok, err := db.ProjectExists(userID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	id := uuid.New().String()
	now := time.Now()

	_, err = db.Exec(`
		INSERT INTO tasks (id, project_id, name, priority, completed, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
	`, id, in.ProjectID, name, priority, nullTime(in.DueDate), now, now)
	if err != nil {
		return nil, err
	}

	return &model.Task{
		ID:        id,
		ProjectID: in.ProjectID,
		Name:      name,
		Priority:  priority,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetTask returns a single task by ID, restricted through its project's owner.
func (db *DB) GetTask(userID, id string) (*model.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	row := db.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND p.user_id = ?
	`, id, userID)

	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// ListTasks returns tasks owned by userID, newest first. The filter can
// narrow by project, priority, completion, and due-date range.
func (db *DB) ListTasks(userID string, filter TaskFilter) ([]model.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`
	args := []interface{}{userID}

	query, args = applyTaskFilter(query, args, filter)
	query += ` ORDER BY t.created_at DESC, t.id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// UpdateTask applies a partial update and re-stamps updated_at. Moving a
// task to another project re-verifies ownership of the target first.
func (db *DB) UpdateTask(userID, id string, in UpdateTaskInput) (*model.Task, error) {
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
		if len(name) > model.MaxTaskNameLen {
			return nil, validationErr("name", "is too long")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if in.ProjectID != nil {
		ok, err := db.ProjectExists(userID, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFound
		}
		sets = append(sets, "project_id = ?")
		args = append(args, *in.ProjectID)
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, validationErr("priority", "is not a known level")
		}
		sets = append(sets, "priority = ?")
		args = append(args, *in.Priority)
	}
	if in.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*in.Completed))
	}
	if in.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, in.DueDate.Format(time.RFC3339))
	}

	args = append(args, id, userID)
	res, err := db.Exec(`
		UPDATE tasks SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)
	`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return db.GetTask(userID, id)
}

// ToggleTaskCompletion flips the completed flag in a single statement, so
// two concurrent toggles cannot both observe the same starting state.
func (db *DB) ToggleTaskCompletion(userID, id string) (*model.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	res, err := db.Exec(`
		UPDATE tasks
		SET completed = CASE WHEN completed = 0 THEN 1 ELSE 0 END, updated_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)
	`, time.Now(), id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return db.GetTask(userID, id)
}

// DeleteTask deletes a task; its notes follow via the cascading foreign key.
func (db *DB) DeleteTask(userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := db.Exec(`
		DELETE FROM tasks
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)
	`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TaskExists reports whether the task exists under userID's ownership.
func (db *DB) TaskExists(userID, id string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}

	var one int
	err := db.QueryRow(`
		SELECT 1 FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND p.user_id = ?
	`, id, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountTasks returns the number of tasks matching the filter.
func (db *DB) CountTasks(userID string, filter TaskFilter) (int, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}

	query := `
		SELECT COUNT(*)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`
	args := []interface{}{userID}
	query, args = applyTaskFilter(query, args, filter)

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// Helper functions

func applyTaskFilter(query string, args []interface{}, filter TaskFilter) (string, []interface{}) {
	if filter.ProjectID != "" {
		query += ` AND t.project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.Priority != nil {
		query += ` AND t.priority = ?`
		args = append(args, *filter.Priority)
	}
	if filter.Completed != nil {
		query += ` AND t.completed = ?`
		args = append(args, boolToInt(*filter.Completed))
	}
	if filter.DueFrom != nil {
		query += ` AND t.due_date >= ?`
		args = append(args, filter.DueFrom.Format(time.RFC3339))
	}
	if filter.DueTo != nil {
		query += ` AND t.due_date <= ?`
		args = append(args, filter.DueTo.Format(time.RFC3339))
	}
	return query, args
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var completed int
	var dueDate *string

	err := s.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Priority,
		&completed, &dueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Completed = completed == 1
	t.DueDate = parseTime(dueDate)

	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
