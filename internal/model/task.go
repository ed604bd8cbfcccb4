package model

import (
	"fmt"
	"time"
)

// MaxTaskNameLen is the longest allowed task name.
const MaxTaskNameLen = 100

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a user-supplied string into a Priority.
// Unrecognized values are rejected at the edge rather than stored.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("invalid priority %q", s)
	}
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Weight returns a numeric weight for sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Task represents a unit of work inside a project
type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Name      string     `json:"name"`
	Priority  Priority   `json:"priority"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Loaded relationships (not stored in the tasks table)
	Notes []Note `json:"notes,omitempty"`
}

// StatusLabel returns the human label used in exports.
func (t *Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "In Progress"
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return time.Now().After(*t.DueDate)
}

// DueBucket classifies the task's due date relative to now.
func (t *Task) DueBucket() DueBucket {
	return BucketFor(t.DueDate, time.Now())
}
