package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wedding-companion/internal/kvstore"
	"wedding-companion/internal/models"
)

// Keys the session is persisted under
const (
	TokenKey = "auth_token"
	GuestKey = "guest_data"
)

var (
	// ErrStorage is returned when the underlying key-value store fails.
	ErrStorage = errors.New("session storage failure")
	// ErrEmptyToken is returned when saving a session without a token.
	ErrEmptyToken = errors.New("session token is empty")
)

// Store persists the current session across restarts
type Store struct {
	kv  kvstore.Store
	log zerolog.Logger
}

// NewStore creates a session store over kv
func NewStore(kv kvstore.Store, logger zerolog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: logger.With().Str("component", "SessionStore").Logger(),
	}
}

// Load returns the persisted session, or nil when nobody is logged in.
// A missing key or an unreadable or invalid snapshot is not an error.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read token: %w", ErrStorage, err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	data, ok, err := s.kv.Get(ctx, GuestKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read guest: %w", ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}

	var guest models.GuestRecord
	if err := json.Unmarshal([]byte(data), &guest); err != nil {
		s.log.Warn().Err(err).Msg("Discarding unreadable guest snapshot")
		return nil, nil
	}
	if err := guest.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("Discarding invalid guest snapshot")
		return nil, nil
	}

	return &models.Session{Token: token, Guest: guest}, nil
}

// Save writes the token then the guest snapshot. The two writes are not atomic:
// on error the caller must treat the session as unpersisted.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(sess.Guest)
	if err != nil {
		return fmt.Errorf("failed to marshal guest: %w", err)
	}

	if err := s.kv.Set(ctx, TokenKey, sess.Token); err != nil {
		return fmt.Errorf("%w: write token: %w", ErrStorage, err)
	}
	if err := s.kv.Set(ctx, GuestKey, string(data)); err != nil {
		return fmt.Errorf("%w: write guest: %w", ErrStorage, err)
	}
	return nil
}

// Clear removes both keys. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	if err := s.kv.Remove(ctx, TokenKey); err != nil {
		errs = append(errs, fmt.Errorf("remove token: %w", err))
	}
	if err := s.kv.Remove(ctx, GuestKey); err != nil {
		errs = append(errs, fmt.Errorf("remove guest: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrStorage, errors.Join(errs...))
	}
	return nil
}
