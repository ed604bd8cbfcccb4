package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dori/projecthub/internal/model"
	"github.com/google/uuid"
)

// CreateUser creates a new account. Emails are unique.
func (db *DB) CreateUser(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErr("email", "must be a valid address")
	}

	id := uuid.New().String()
	now := time.Now()

	_, err := db.Exec(`
		INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)
	`, id, email, now)
	if err != nil {
		return nil, err
	}

	return &model.User{ID: id, Email: email, CreatedAt: now}, nil
}

// GetUserByEmail looks up an account by its (case-insensitive) email.
func (db *DB) GetUserByEmail(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u model.User
	err := db.QueryRow(`
		SELECT id, email, created_at FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateSession issues a fresh opaque session token for a user.
func (db *DB) CreateSession(userID string) (string, error) {
	token := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)
	`, token, userID, time.Now())
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetSessionUser resolves a session token to its account.
func (db *DB) GetSessionUser(token string) (*model.User, error) {
	var u model.User
	err := db.QueryRow(`
		SELECT u.id, u.email, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`, token).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteSession invalidates a session token. Deleting an unknown token is
// reported as ErrNotFound rather than silently succeeding.
func (db *DB) DeleteSession(token string) error {
	res, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
