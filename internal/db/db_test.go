package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh migrated database under a temp dir.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}

// seedUser creates an account and returns its id.
func seedUser(t *testing.T, database *DB, email string) string {
	t.Helper()

	user, err := database.CreateUser(email)
	require.NoError(t, err)
	return user.ID
}

func TestOpenRunsMigrations(t *testing.T) {
	database := newTestDB(t)

	// All core tables must exist after Open.
	for _, table := range []string{"users", "sessions", "projects", "tasks", "notes"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	database := newTestDB(t)

	_, err := database.CreateUser("")
	require.Error(t, err)
	require.True(t, IsValidation(err))

	_, err = database.CreateUser("not-an-email")
	require.True(t, IsValidation(err))
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	database := newTestDB(t)

	created, err := database.CreateUser("  Alice@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", created.Email)

	found, err := database.GetUserByEmail("ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
}

func TestSessionRoundTrip(t *testing.T) {
	database := newTestDB(t)
	userID := seedUser(t, database, "alice@example.com")

	token, err := database.CreateSession(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := database.GetSessionUser(token)
	require.NoError(t, err)
	require.Equal(t, userID, user.ID)

	require.NoError(t, database.DeleteSession(token))

	_, err = database.GetSessionUser(token)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, database.DeleteSession(token), ErrNotFound)
}
