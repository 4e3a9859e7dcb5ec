package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wedding-companion/internal/directory"
	"wedding-companion/internal/models"
	"wedding-companion/internal/wedding"
)

// Latency is the simulated round trip of each call
type Latency struct {
	VerifyQRCode         time.Duration
	GetGuestByEmail      time.Duration
	UpdateGuest          time.Duration
	GetWeddingInfo       time.Duration
	GetActivities        time.Duration
	GetActivity          time.Duration
	VerifyInvitationCode time.Duration
}

// DefaultLatency mirrors the delays of the hosted mock backend
func DefaultLatency() Latency {
	return Latency{
		VerifyQRCode:         1000 * time.Millisecond,
		GetGuestByEmail:      800 * time.Millisecond,
		UpdateGuest:          1200 * time.Millisecond,
		GetWeddingInfo:       600 * time.Millisecond,
		GetActivities:        800 * time.Millisecond,
		GetActivity:          500 * time.Millisecond,
		VerifyInvitationCode: 1500 * time.Millisecond,
	}
}

// Scale multiplies every delay by f. A zero factor disables latency.
func (l Latency) Scale(f float64) Latency {
	s := func(d time.Duration) time.Duration { return time.Duration(float64(d) * f) }
	return Latency{
		VerifyQRCode:         s(l.VerifyQRCode),
		GetGuestByEmail:      s(l.GetGuestByEmail),
		UpdateGuest:          s(l.UpdateGuest),
		GetWeddingInfo:       s(l.GetWeddingInfo),
		GetActivities:        s(l.GetActivities),
		GetActivity:          s(l.GetActivity),
		VerifyInvitationCode: s(l.VerifyInvitationCode),
	}
}

// MockClient serves Client calls from local data
type MockClient struct {
	guests  *directory.Directory
	catalog *wedding.Catalog
	latency Latency
	log     zerolog.Logger
}

// NewMockClient creates a mock backend over the given directory and catalog
func NewMockClient(guests *directory.Directory, catalog *wedding.Catalog, latency Latency, logger zerolog.Logger) *MockClient {
	return &MockClient{
		guests:  guests,
		catalog: catalog,
		latency: latency,
		log:     logger.With().Str("component", "API").Logger(),
	}
}

// VerifyQRCode returns the invitation encoded in a scanned QR code
func (c *MockClient) VerifyQRCode(ctx context.Context, code string) (models.GuestRecord, error) {
	if err := c.wait(ctx, "verify-qr-code", c.latency.VerifyQRCode); err != nil {
		return models.GuestRecord{}, err
	}
	r, ok := c.guests.FindByCode(code)
	if !ok {
		return models.GuestRecord{}, ErrInvalidQRCode
	}
	return r, nil
}

// GetGuestByEmail looks up an invitation by the primary guest's email
func (c *MockClient) GetGuestByEmail(ctx context.Context, email string) (models.GuestRecord, error) {
	if err := c.wait(ctx, "get-guest", c.latency.GetGuestByEmail); err != nil {
		return models.GuestRecord{}, err
	}
	r, ok := c.guests.FindByEmail(email)
	if !ok {
		return models.GuestRecord{}, ErrGuestNotFound
	}
	return r, nil
}

// UpdateGuest applies a partial update to an invitation
func (c *MockClient) UpdateGuest(ctx context.Context, email string, patch directory.Patch) (models.GuestRecord, error) {
	if err := c.wait(ctx, "update-guest", c.latency.UpdateGuest); err != nil {
		return models.GuestRecord{}, err
	}
	return c.guests.Update(email, patch)
}

// GetWeddingInfo returns the general wedding information
func (c *MockClient) GetWeddingInfo(ctx context.Context) (models.WeddingInfo, error) {
	if err := c.wait(ctx, "get-wedding-info", c.latency.GetWeddingInfo); err != nil {
		return models.WeddingInfo{}, err
	}
	return c.catalog.Info(), nil
}

// GetActivities returns the schedule ordered by start time
func (c *MockClient) GetActivities(ctx context.Context) ([]models.Activity, error) {
	if err := c.wait(ctx, "get-activities", c.latency.GetActivities); err != nil {
		return nil, err
	}
	return c.catalog.Activities(), nil
}

// GetActivity returns a single schedule entry
func (c *MockClient) GetActivity(ctx context.Context, id string) (models.Activity, error) {
	if err := c.wait(ctx, "get-activity", c.latency.GetActivity); err != nil {
		return models.Activity{}, err
	}
	a, ok := c.catalog.Activity(id)
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	return a, nil
}

// VerifyInvitationCode reports whether a code belongs to an invitation
func (c *MockClient) VerifyInvitationCode(ctx context.Context, code string) (bool, error) {
	if err := c.wait(ctx, "verify-invitation-code", c.latency.VerifyInvitationCode); err != nil {
		return false, err
	}
	_, ok := c.guests.FindByCode(code)
	return ok, nil
}

// wait simulates the network round trip, returning early when ctx is done
func (c *MockClient) wait(ctx context.Context, op string, d time.Duration) error {
	c.log.Debug().Str("op", op).Dur("latency", d).Msg("Simulating request")
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case <-timer.C:
		return nil
	}
}

var _ Client = (*MockClient)(nil)
