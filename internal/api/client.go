// Package api is the network collaborator of the companion app. The backend
// is mocked: MockClient answers from the in-memory directory and catalog after
// a simulated round trip.
package api

import (
	"context"
	"errors"

	"wedding-companion/internal/directory"
	"wedding-companion/internal/models"
)

var (
	// ErrInvalidQRCode is the backend's answer for an unknown invitation code.
	ErrInvalidQRCode = errors.New("invalid QR code")
	// ErrGuestNotFound is the backend's answer for an unknown guest.
	ErrGuestNotFound = errors.New("guest not found")
	// ErrActivityNotFound is the backend's answer for an unknown activity.
	ErrActivityNotFound = errors.New("activity not found")
)

// Client is the set of remote calls the app relies on
type Client interface {
	VerifyQRCode(ctx context.Context, code string) (models.GuestRecord, error)
	GetGuestByEmail(ctx context.Context, email string) (models.GuestRecord, error)
	UpdateGuest(ctx context.Context, email string, patch directory.Patch) (models.GuestRecord, error)
	GetWeddingInfo(ctx context.Context) (models.WeddingInfo, error)
	GetActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id string) (models.Activity, error)
	VerifyInvitationCode(ctx context.Context, code string) (bool, error)
}
