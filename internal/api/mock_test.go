package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-companion/internal/directory"
	"wedding-companion/internal/wedding"
)

func setupClient(t *testing.T, latency Latency) *MockClient {
	t.Helper()

	guests, err := directory.New(wedding.SeedGuests())
	require.NoError(t, err)
	return NewMockClient(guests, wedding.NewSeedCatalog(), latency, zerolog.Nop())
}

func TestVerifyQRCode(t *testing.T) {
	c := setupClient(t, Latency{})
	ctx := context.Background()

	r, err := c.VerifyQRCode(ctx, "SOPHIE2025")
	require.NoError(t, err)
	assert.Equal(t, "2", r.ID)

	_, err = c.VerifyQRCode(ctx, "NOPE")
	assert.True(t, errors.Is(err, ErrInvalidQRCode))
}

func TestGuestLookupAndUpdate(t *testing.T) {
	c := setupClient(t, Latency{})
	ctx := context.Background()

	_, err := c.GetGuestByEmail(ctx, "nobody@email.com")
	assert.True(t, errors.Is(err, ErrGuestNotFound))

	table := "7"
	r, err := c.UpdateGuest(ctx, "lucas.bernard@email.com", directory.Patch{TableNumber: &table})
	require.NoError(t, err)
	assert.Equal(t, "7", r.TableNumber)

	r, err = c.GetGuestByEmail(ctx, "lucas.bernard@email.com")
	require.NoError(t, err)
	assert.Equal(t, "7", r.TableNumber)
}

func TestVerifyInvitationCode(t *testing.T) {
	c := setupClient(t, Latency{})
	ctx := context.Background()

	ok, err := c.VerifyInvitationCode(ctx, "PIERRE2025")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.VerifyInvitationCode(ctx, "pierre2025")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWeddingContent(t *testing.T) {
	c := setupClient(t, Latency{})
	ctx := context.Background()

	info, err := c.GetWeddingInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Château des Fleurs", info.Venue.Name)

	acts, err := c.GetActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, acts, 5)

	a, err := c.GetActivity(ctx, "party")
	require.NoError(t, err)
	assert.Equal(t, "Soirée Dansante", a.Title)

	_, err = c.GetActivity(ctx, "brunch")
	assert.True(t, errors.Is(err, ErrActivityNotFound))
}

func TestLatencyHonorsCancellation(t *testing.T) {
	c := setupClient(t, Latency{VerifyQRCode: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.VerifyQRCode(ctx, "JEAN2025")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), time.Second)
}

func TestLatencyScale(t *testing.T) {
	l := DefaultLatency().Scale(0.5)
	assert.Equal(t, 750*time.Millisecond, l.VerifyInvitationCode)
	assert.Equal(t, 250*time.Millisecond, l.GetActivity)

	assert.Zero(t, DefaultLatency().Scale(0).VerifyQRCode)
}
