package model

import (
	"time"
)

// Validation limits shared by the data-access layer.
const (
	MaxProjectNameLen        = 100
	MaxProjectDescriptionLen = 500
)

// Project groups tasks under a single owner.
type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Loaded aggregates (not stored in the projects table)
	TaskCount      int `json:"task_count"`
	CompletedCount int `json:"completed_count"`
}

// DueBucket classifies the project's due date relative to now.
func (p *Project) DueBucket() DueBucket {
	return BucketFor(p.DueDate, time.Now())
}

// CompletionPercent returns the percentage of completed tasks, 0 when the
// project has no tasks.
func (p *Project) CompletionPercent() int {
	return Percent(p.CompletedCount, p.TaskCount)
}
