// Package export assembles a self-contained snapshot of one project's data
// and renders it as JSON or PDF.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dori/projecthub/internal/db"
	"github.com/dori/projecthub/internal/model"
)

// Export artifact constants.
const (
	Version = "1.0.0"
	AppName = "ProjectHub"
)

// Format selects the rendered output.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat converts a user-supplied string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("invalid export format %q", s)
	}
}

// ErrInvalidDocument is returned when the assembled document fails its
// structural self-check. It signals an internal bug, not bad input.
var ErrInvalidDocument = errors.New("generated export data is invalid")

// Store is the slice of the data-access layer the pipeline reads from.
type Store interface {
	GetProject(userID, id string) (*model.Project, error)
	ListTasks(userID string, filter db.TaskFilter) ([]model.Task, error)
	ListNotes(userID string, filter db.NoteFilter) ([]model.Note, error)
}

// Document is the assembled export tree plus generation metadata.
type Document struct {
	GeneratedAt time.Time   `json:"-"`
	Project     ProjectData `json:"project"`
}

// ProjectData is the project node of the export tree.
type ProjectData struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	DueDate           string     `json:"due_date,omitempty"`
	CreatedAt         string     `json:"created_at"`
	TasksCount        int        `json:"tasks_count"`
	CompletedCount    int        `json:"completed_count"`
	CompletionPercent int        `json:"completion_percent"`
	TotalNotesCount   int        `json:"total_notes_count"`
	Tasks             []TaskData `json:"tasks"`
}

// TaskData is a task node with its notes embedded.
type TaskData struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Priority  string     `json:"priority"`
	Completed bool       `json:"completed"`
	Status    string     `json:"status"`
	DueDate   string     `json:"due_date,omitempty"`
	Notes     []NoteData `json:"notes"`
}

// NoteData is a note node with human-formatted fields.
type NoteData struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Builder runs the aggregation pipeline against a store.
type Builder struct {
	Store Store
}

// Build fetches the project, its tasks, and each task's notes, and
// assembles the export document. A failed note fetch degrades that task to
// zero notes instead of aborting the whole export; project and task fetch
// failures abort.
func (b *Builder) Build(userID, projectID string) (*Document, error) {
	project, err := b.Store.GetProject(userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	tasks, err := b.Store.ListTasks(userID, db.TaskFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	doc := &Document{
		GeneratedAt: time.Now(),
		Project: ProjectData{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			DueDate:     formatDate(project.DueDate),
			CreatedAt:   project.CreatedAt.Format("Jan 2, 2006"),
			Tasks:       make([]TaskData, 0, len(tasks)),
		},
	}

	totalNotes := 0
	completed := 0
	for _, t := range tasks {
		td := TaskData{
			ID:        t.ID,
			Name:      t.Name,
			Priority:  string(t.Priority),
			Completed: t.Completed,
			Status:    t.StatusLabel(),
			DueDate:   formatDate(t.DueDate),
			Notes:     []NoteData{},
		}

		notes, err := b.Store.ListNotes(userID, db.NoteFilter{TaskID: t.ID})
		if err != nil {
			// Partial-failure policy: the export still completes, this
			// task just carries no notes.
			notes = nil
		}
		for _, n := range notes {
			td.Notes = append(td.Notes, NoteData{
				ID:        n.ID,
				Title:     n.Title,
				Content:   normalizeBullets(n.Content),
				CreatedAt: n.CreatedAt.Format("Jan 2, 2006 15:04"),
			})
		}
		totalNotes += len(td.Notes)

		if t.Completed {
			completed++
		}
		doc.Project.Tasks = append(doc.Project.Tasks, td)
	}

	doc.Project.TasksCount = len(tasks)
	doc.Project.CompletedCount = completed
	doc.Project.CompletionPercent = model.Percent(completed, len(tasks))
	doc.Project.TotalNotesCount = totalNotes

	if err := validate(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// validate is a consistency self-check on the assembled document, not user
// input validation.
func validate(doc *Document) error {
	if doc.Project.ID == "" || doc.Project.Name == "" {
		return ErrInvalidDocument
	}
	for _, t := range doc.Project.Tasks {
		if t.ID == "" || t.Name == "" {
			return ErrInvalidDocument
		}
		if t.Notes == nil {
			return ErrInvalidDocument
		}
	}
	return nil
}

// normalizeBullets rewrites leading "-" and "*" list markers to a uniform
// bullet glyph.
func normalizeBullets(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + "• " + trimmed[2:]
		}
	}
	return strings.Join(lines, "\n")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
