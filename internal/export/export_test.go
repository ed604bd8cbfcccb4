package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dori/projecthub/internal/db"
	"github.com/dori/projecthub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned data and can fail note fetches per task.
type fakeStore struct {
	project      *model.Project
	projectErr   error
	tasks        []model.Task
	tasksErr     error
	notesByTask  map[string][]model.Note
	failNotesFor map[string]bool
}

func (f *fakeStore) GetProject(userID, id string) (*model.Project, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return f.project, nil
}

func (f *fakeStore) ListTasks(userID string, filter db.TaskFilter) ([]model.Task, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasks, nil
}

func (f *fakeStore) ListNotes(userID string, filter db.NoteFilter) ([]model.Note, error) {
	if f.failNotesFor[filter.TaskID] {
		return nil, errors.New("connection reset")
	}
	return f.notesByTask[filter.TaskID], nil
}

func testProject() *model.Project {
	return &model.Project{
		ID:        "proj-1",
		UserID:    "user-1",
		Name:      "Website Redesign",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func testTask(id string, completed bool) model.Task {
	return model.Task{
		ID:        id,
		ProjectID: "proj-1",
		Name:      "task " + id,
		Priority:  model.PriorityMedium,
		Completed: completed,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func testNote(id, taskID, content string) model.Note {
	return model.Note{
		ID: id, TaskID: taskID, Content: content,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestBuildCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []model.Task
		want      int
		completed int
	}{
		{"no tasks", nil, 0, 0},
		{"one of four", []model.Task{
			testTask("a", true), testTask("b", false), testTask("c", false), testTask("d", false),
		}, 25, 1},
		{"two of three", []model.Task{
			testTask("a", true), testTask("b", true), testTask("c", false),
		}, 67, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{Store: &fakeStore{project: testProject(), tasks: tt.tasks}}
			doc, err := b.Build("user-1", "proj-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Project.CompletionPercent)
			assert.Equal(t, tt.completed, doc.Project.CompletedCount)
			assert.Equal(t, len(tt.tasks), doc.Project.TasksCount)
		})
	}
}

func TestBuildAbortsOnProjectError(t *testing.T) {
	b := &Builder{Store: &fakeStore{projectErr: db.ErrNotFound}}
	_, err := b.Build("user-1", "proj-1")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestBuildAbortsOnTasksError(t *testing.T) {
	b := &Builder{Store: &fakeStore{project: testProject(), tasksErr: errors.New("boom")}}
	_, err := b.Build("user-1", "proj-1")
	require.Error(t, err)
}

func TestBuildToleratesNoteFetchFailure(t *testing.T) {
	store := &fakeStore{
		project: testProject(),
		tasks:   []model.Task{testTask("a", false), testTask("b", false), testTask("c", false)},
		notesByTask: map[string][]model.Note{
			"a": {testNote("n1", "a", "alpha"), testNote("n2", "a", "beta")},
			"b": {testNote("n3", "b", "gamma")},
			"c": {testNote("n4", "c", "lost")},
		},
		failNotesFor: map[string]bool{"c": true},
	}

	b := &Builder{Store: store}
	doc, err := b.Build("user-1", "proj-1")
	require.NoError(t, err, "a per-task note failure must not abort the export")

	byID := map[string]TaskData{}
	for _, td := range doc.Project.Tasks {
		byID[td.ID] = td
	}
	assert.Len(t, byID["a"].Notes, 2)
	assert.Len(t, byID["b"].Notes, 1)
	assert.Empty(t, byID["c"].Notes)
	require.NotNil(t, byID["c"].Notes, "degraded task still carries a proper list")

	// Counts reflect only the successful fetches.
	assert.Equal(t, 3, doc.Project.TotalNotesCount)
}

func TestBuildNormalizesBullets(t *testing.T) {
	store := &fakeStore{
		project: testProject(),
		tasks:   []model.Task{testTask("a", false)},
		notesByTask: map[string][]model.Note{
			"a": {testNote("n1", "a", "- first\n* second\n  - nested\nplain")},
		},
	}

	b := &Builder{Store: store}
	doc, err := b.Build("user-1", "proj-1")
	require.NoError(t, err)

	content := doc.Project.Tasks[0].Notes[0].Content
	assert.Equal(t, "• first\n• second\n  • nested\nplain", content)
}

func TestBuildStatusLabels(t *testing.T) {
	store := &fakeStore{
		project: testProject(),
		tasks:   []model.Task{testTask("a", true), testTask("b", false)},
	}

	b := &Builder{Store: store}
	doc, err := b.Build("user-1", "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "Completed", doc.Project.Tasks[0].Status)
	assert.Equal(t, "In Progress", doc.Project.Tasks[1].Status)
}

func TestRenderJSONRoundTrip(t *testing.T) {
	store := &fakeStore{
		project: testProject(),
		tasks:   []model.Task{testTask("a", true), testTask("b", false)},
		notesByTask: map[string][]model.Note{
			"a": {testNote("n1", "a", "one"), testNote("n2", "a", "two")},
			"b": {testNote("n3", "b", "three")},
		},
	}

	b := &Builder{Store: store}
	doc, err := b.Build("user-1", "proj-1")
	require.NoError(t, err)

	data, err := RenderJSON(doc)
	require.NoError(t, err)

	var parsed struct {
		Metadata Metadata    `json:"metadata"`
		Project  ProjectData `json:"project"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "1.0.0", parsed.Metadata.Version)
	assert.Equal(t, "json", parsed.Metadata.Format)
	assert.Equal(t, 1, parsed.Metadata.ProjectCount)
	assert.Equal(t, AppName, parsed.Metadata.AppName)
	assert.NotEmpty(t, parsed.Metadata.ExportDate)

	_, err = time.Parse(time.RFC3339, parsed.Metadata.ExportTimestamp)
	require.NoError(t, err)

	// Structural invariants of the envelope.
	assert.Equal(t, parsed.Project.TasksCount, len(parsed.Project.Tasks))
	totalNotes := 0
	for _, task := range parsed.Project.Tasks {
		totalNotes += len(task.Notes)
	}
	assert.Equal(t, parsed.Project.TotalNotesCount, totalNotes)
	assert.Equal(t, parsed.Metadata.TotalTasks, parsed.Project.TasksCount)
	assert.Equal(t, parsed.Metadata.TotalNotes, parsed.Project.TotalNotesCount)
}

func TestValidateCatchesBrokenDocument(t *testing.T) {
	// A project the store returned with no name indicates an assembly bug.
	store := &fakeStore{project: &model.Project{ID: "proj-1"}}
	b := &Builder{Store: store}

	_, err := b.Build("user-1", "proj-1")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	tasks := make([]model.Task, 40)
	notes := map[string][]model.Note{}
	for i := range tasks {
		id := fmt.Sprintf("t%02d", i)
		tasks[i] = testTask(id, i%3 == 0)
		notes[id] = []model.Note{testNote("n"+id, id, "- progress update")}
	}
	store := &fakeStore{project: testProject(), tasks: tasks, notesByTask: notes}

	b := &Builder{Store: store}
	doc, err := b.Build("user-1", "proj-1")
	require.NoError(t, err)

	data, err := RenderPDF(doc)
	require.NoError(t, err)
	assert.True(t, len(data) > 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	date := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"Q1 Launch Plan!!", FormatJSON, "q1_launch_plan___export_2024-03-05.json"},
		{"Simple", FormatPDF, "simple_export_2024-03-05.pdf"},
		{"snake_case already", FormatJSON, "snake_case_already_export_2024-03-05.json"},
		{"Ünïcode née", FormatJSON, "_n_code_n_e_export_2024-03-05.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.name, tt.format, date))
	}
}
