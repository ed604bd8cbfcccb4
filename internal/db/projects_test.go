package db

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRoundTrip(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	due := time.Now().AddDate(0, 0, 3)
	created, err := database.CreateProject(userID, CreateProjectInput{
		Name:        "Website Redesign",
		Description: "Refresh the marketing site",
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	got, err := database.GetProject(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website Redesign", got.Name)
	assert.Equal(t, "Refresh the marketing site", got.Description)
	assert.Equal(t, userID, got.UserID)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
}

func TestCreateProjectValidation(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	tests := []struct {
		name string
		in   CreateProjectInput
	}{
		{"empty name", CreateProjectInput{Name: ""}},
		{"whitespace name", CreateProjectInput{Name: "   "}},
		{"name too long", CreateProjectInput{Name: strings.Repeat("x", 101)}},
		{"description too long", CreateProjectInput{Name: "ok", Description: strings.Repeat("x", 501)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := database.CreateProject(userID, tt.in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	// Nothing persisted by the failed creates.
	count, err := database.CountProjects(userID, ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreateProjectTrimsName(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	created, err := database.CreateProject(userID, CreateProjectInput{Name: "  Q1 Plan  "})
	require.NoError(t, err)
	assert.Equal(t, "Q1 Plan", created.Name)
}

func TestProjectRequiresIdentity(t *testing.T) {
	database := newTestDB(t)

	_, err := database.CreateProject("", CreateProjectInput{Name: "x"})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = database.GetProject("", "some-id")
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = database.ListProjects("", ProjectFilter{})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.ErrorIs(t, database.DeleteProject("", "some-id"), ErrNotAuthenticated)
}

func TestProjectOwnershipIsOpaque(t *testing.T) {
	database := newTestDB(t)
	alice := seedUser(t, database, "alice@example.com")
	bob := seedUser(t, database, "bob@example.com")

	created, err := database.CreateProject(alice, CreateProjectInput{Name: "Private"})
	require.NoError(t, err)

	// Bob sees the same error for Alice's project as for a nonexistent one.
	_, err = database.GetProject(bob, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = database.GetProject(bob, "never-existed")
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := database.ProjectExists(bob, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = database.DeleteProject(bob, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Still there for Alice.
	_, err = database.GetProject(alice, created.ID)
	require.NoError(t, err)
}

func TestListProjectsNewestFirst(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	for _, name := range []string{"first", "second", "third"} {
		_, err := database.CreateProject(userID, CreateProjectInput{Name: name})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	projects, err := database.ListProjects(userID, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "third", projects[0].Name)
	assert.Equal(t, "first", projects[2].Name)
}

func TestListProjectsDueRangeFilter(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	mk := func(name string, daysOut int) {
		due := time.Now().AddDate(0, 0, daysOut)
		_, err := database.CreateProject(userID, CreateProjectInput{Name: name, DueDate: &due})
		require.NoError(t, err)
	}
	mk("near", 1)
	mk("mid", 5)
	mk("far", 30)

	from := time.Now().AddDate(0, 0, 2)
	to := time.Now().AddDate(0, 0, 10)
	projects, err := database.ListProjects(userID, ProjectFilter{DueFrom: &from, DueTo: &to})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "mid", projects[0].Name)
}

func TestUpdateProjectPartial(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	created, err := database.CreateProject(userID, CreateProjectInput{
		Name:        "Original",
		Description: "Keep me",
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	newName := "Renamed"
	updated, err := database.UpdateProject(userID, created.ID, UpdateProjectInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Keep me", updated.Description, "unsupplied field must not change")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateProjectNoFieldsStillStamps(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	created, err := database.CreateProject(userID, CreateProjectInput{Name: "Stable"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := database.UpdateProject(userID, created.ID, UpdateProjectInput{})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateProjectEmptyNameRejected(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	created, err := database.CreateProject(userID, CreateProjectInput{Name: "Named"})
	require.NoError(t, err)

	empty := "  "
	_, err = database.UpdateProject(userID, created.ID, UpdateProjectInput{Name: &empty})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	got, err := database.GetProject(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Named", got.Name)
}

func TestDeleteProjectCascades(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	project, err := database.CreateProject(userID, CreateProjectInput{Name: "Doomed"})
	require.NoError(t, err)
	task, err := database.CreateTask(userID, CreateTaskInput{ProjectID: project.ID, Name: "child"})
	require.NoError(t, err)
	note, err := database.CreateNote(userID, CreateNoteInput{TaskID: task.ID, Content: "grandchild"})
	require.NoError(t, err)

	require.NoError(t, database.DeleteProject(userID, project.ID))

	_, err = database.GetProject(userID, project.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = database.GetTask(userID, task.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = database.GetNote(userID, note.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjectTaskCounts(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	project, err := database.CreateProject(userID, CreateProjectInput{Name: "Counted"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := database.CreateTask(userID, CreateTaskInput{ProjectID: project.ID, Name: "t"})
		require.NoError(t, err)
	}
	tasks, err := database.ListTasks(userID, TaskFilter{ProjectID: project.ID})
	require.NoError(t, err)
	_, err = database.ToggleTaskCompletion(userID, tasks[0].ID)
	require.NoError(t, err)

	got, err := database.GetProject(userID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.TaskCount)
	assert.Equal(t, 1, got.CompletedCount)
	assert.Equal(t, 25, got.CompletionPercent())
}
