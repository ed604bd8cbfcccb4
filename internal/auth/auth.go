// Package auth resolves session tokens to identities and notifies
// subscribers when the signed-in identity changes.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dori/projecthub/internal/db"
)

// ErrInvalidAPIKey is returned when registration is attempted with a key
// that does not match the configured one.
var ErrInvalidAPIKey = errors.New("invalid api key")

// Identity is the acting user passed to every data-access call.
type Identity struct {
	UserID string
	Email  string
}

// EventType distinguishes identity-change notifications.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is delivered to subscribers on every identity change.
type Event struct {
	Type     EventType
	Identity *Identity // nil on sign-out
}

// Service is the authentication collaborator. Sessions are persisted in the
// same store as the data they guard.
type Service struct {
	db     *db.DB
	apiKey string

	mu        sync.Mutex
	nextSub   int
	listeners map[int]func(Event)
}

// New creates an auth service. apiKey gates account registration.
func New(database *db.DB, apiKey string) *Service {
	return &Service{
		db:        database,
		apiKey:    apiKey,
		listeners: make(map[int]func(Event)),
	}
}

// Register creates an account and signs it in, returning the identity and a
// session token. The configured API key must be presented.
func (s *Service) Register(email, apiKey string) (*Identity, string, error) {
	if apiKey != s.apiKey {
		return nil, "", ErrInvalidAPIKey
	}

	user, err := s.db.CreateUser(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}

	return s.startSession(user.ID, user.Email)
}

// SignIn opens a session for an existing account.
func (s *Service) SignIn(email string) (*Identity, string, error) {
	user, err := s.db.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}

	return s.startSession(user.ID, user.Email)
}

// SignOut invalidates a session token.
func (s *Service) SignOut(token string) error {
	if err := s.db.DeleteSession(token); err != nil {
		return err
	}
	s.notify(Event{Type: EventSignedOut})
	return nil
}

// CurrentIdentity resolves a session token. Unknown or expired tokens are a
// universal "not authenticated" failure.
func (s *Service) CurrentIdentity(token string) (*Identity, error) {
	if token == "" {
		return nil, db.ErrNotAuthenticated
	}
	user, err := s.db.GetSessionUser(token)
	if errors.Is(err, db.ErrNotFound) {
		return nil, db.ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: user.ID, Email: user.Email}, nil
}

// Subscribe registers a listener for identity changes and returns a cancel
// function.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) startSession(userID, email string) (*Identity, string, error) {
	token, err := s.db.CreateSession(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open session: %w", err)
	}

	ident := &Identity{UserID: userID, Email: email}
	s.notify(Event{Type: EventSignedIn, Identity: ident})
	return ident, token, nil
}

func (s *Service) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
