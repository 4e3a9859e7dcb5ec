package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wedding-companion/internal/models"
	"wedding-companion/internal/verifier"
)

// State is the authentication state of the app
type State int

const (
	// StateUnknown is the state before Initialize has run.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrNotInitialized is reported when login is attempted before Initialize.
var ErrNotInitialized = errors.New("session not initialized")

// CodeVerifier checks invitation codes
type CodeVerifier interface {
	Verify(ctx context.Context, code string) (models.GuestRecord, error)
}

// SessionPersister stores the session between runs
type SessionPersister interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// TokenFunc mints a session token
type TokenFunc func() string

// NewToken returns a token unique to this login. It is a local device marker,
// not a credential checked by any remote service.
func NewToken() string {
	return "auth-token-" + uuid.NewString()
}

// Session owns the authentication state and is the only place sessions are
// created or destroyed
type Session struct {
	mu       sync.RWMutex
	state    State
	current  *models.Session
	lastErr  error
	verifier CodeVerifier
	store    SessionPersister
	newToken TokenFunc
	log      zerolog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithTokenFunc replaces the token generator
func WithTokenFunc(fn TokenFunc) Option {
	return func(s *Session) {
		s.newToken = fn
	}
}

// New creates a session in the Unknown state
func New(v CodeVerifier, store SessionPersister, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		state:    StateUnknown,
		verifier: v,
		store:    store,
		newToken: NewToken,
		log:      logger.With().Str("component", "AuthSession").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores a persisted session. It always leaves the session
// Authenticated or Unauthenticated; a failing store means no session.
func (s *Session) Initialize(ctx context.Context) {
	loaded, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("Could not restore session, starting signed out")
		s.lastErr = err
		s.setUnauthenticated()
		return
	}
	if loaded == nil {
		s.setUnauthenticated()
		return
	}

	sess := models.Session{Token: loaded.Token, Guest: loaded.Guest.Clone()}
	s.current = &sess
	s.state = StateAuthenticated
	s.log.Info().Str("guest_id", sess.Guest.ID).Msg("Session restored")
}

// Login verifies code and opens a session for its invitation. It reports
// failure through its result; the cause is available from LastError.
func (s *Session) Login(ctx context.Context, code string) bool {
	if s.State() == StateUnknown {
		s.fail(ErrNotInitialized)
		return false
	}

	guest, err := s.verifier.Verify(ctx, code)
	if err != nil {
		if errors.Is(err, verifier.ErrInvalidCode) {
			s.log.Info().Str("code", code).Msg("Rejected invitation code")
		} else {
			s.log.Error().Err(err).Msg("Invitation verification failed")
		}
		s.fail(err)
		return false
	}

	sess := models.Session{Token: s.newToken(), Guest: guest}

	// The session stays usable for this run even if it could not be persisted.
	var saveErr error
	if err := s.store.Save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("guest_id", guest.ID).Msg("Session not persisted, guest will need to log in again after restart")
		saveErr = fmt.Errorf("login succeeded but session was not persisted: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sess
	s.state = StateAuthenticated
	s.lastErr = saveErr
	s.log.Info().Str("guest_id", guest.ID).Msg("Guest logged in")
	return true
}

// Logout destroys the session. It always succeeds from the caller's view.
func (s *Session) Logout(ctx context.Context) {
	err := s.store.Clear(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("Could not clear persisted session")
	}
	s.lastErr = err
	s.setUnauthenticated()
}

// Refresh replaces the snapshot of the logged-in guest and persists it.
// Records of other guests are ignored.
func (s *Session) Refresh(ctx context.Context, guest models.GuestRecord) {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.current == nil || s.current.Guest.ID != guest.ID {
		s.mu.Unlock()
		return
	}
	sess := models.Session{Token: s.current.Token, Guest: guest.Clone()}
	s.current = &sess
	s.mu.Unlock()

	if err := s.store.Save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("guest_id", guest.ID).Msg("Persisted session is stale")
		s.fail(err)
	}
}

// CurrentGuest returns the logged-in invitation
func (s *Session) CurrentGuest() (models.GuestRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateAuthenticated || s.current == nil {
		return models.GuestRecord{}, false
	}
	return s.current.Guest.Clone(), true
}

// Token returns the token of the current session
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return "", false
	}
	return s.current.Token, true
}

// State returns the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a guest is logged in
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// LastError returns the failure or degradation of the last operation, if any
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// setUnauthenticated must be called with mu held.
func (s *Session) setUnauthenticated() {
	s.current = nil
	s.state = StateUnauthenticated
}
