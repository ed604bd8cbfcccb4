package model

import (
	"time"
)

// Note content is capped well above typical use; title is optional.
const (
	MaxNoteTitleLen   = 200
	MaxNoteContentLen = 10000
)

// Note is a free-form annotation attached to a task.
type Note struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
