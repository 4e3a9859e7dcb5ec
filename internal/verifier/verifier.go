package verifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wedding-companion/internal/api"
	"wedding-companion/internal/models"
)

var (
	// ErrInvalidCode is returned when a code matches no invitation.
	ErrInvalidCode = errors.New("invitation not found, please retry")
	// ErrTransport is returned when the backend could not be reached.
	ErrTransport = errors.New("invitation service unavailable")
)

// CodeLookup is the part of the backend the verifier needs
type CodeLookup interface {
	VerifyInvitationCode(ctx context.Context, code string) (bool, error)
	VerifyQRCode(ctx context.Context, code string) (models.GuestRecord, error)
}

// Verifier answers whether an invitation code is valid, and for whom
type Verifier struct {
	backend CodeLookup
}

// New creates a verifier over the given backend
func New(backend CodeLookup) *Verifier {
	return &Verifier{backend: backend}
}

// Verify returns the invitation matching code exactly. The code is checked
// before the invitation is fetched.
func (v *Verifier) Verify(ctx context.Context, code string) (models.GuestRecord, error) {
	if strings.TrimSpace(code) == "" {
		return models.GuestRecord{}, ErrInvalidCode
	}

	known, err := v.backend.VerifyInvitationCode(ctx, code)
	if err != nil {
		return models.GuestRecord{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !known {
		return models.GuestRecord{}, fmt.Errorf("%w: %s", ErrInvalidCode, code)
	}

	r, err := v.backend.VerifyQRCode(ctx, code)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, api.ErrInvalidQRCode):
		return models.GuestRecord{}, fmt.Errorf("%w: %s", ErrInvalidCode, code)
	default:
		return models.GuestRecord{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
}

// IsCodeKnown asks the backend whether code belongs to an invitation without
// fetching it. Transport failures count as unknown.
func (v *Verifier) IsCodeKnown(ctx context.Context, code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	known, err := v.backend.VerifyInvitationCode(ctx, code)
	return err == nil && known
}
