package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-companion/internal/auth"
	"wedding-companion/internal/config"
	"wedding-companion/internal/models"
	"wedding-companion/internal/rsvp"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:        t.TempDir(),
		SessionBackend: backend,
		LogLevel:       "info",
	}
}

func TestRSVPResyncsPersistedSession(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			a, err := New(ctx, cfg, zerolog.Nop())
			require.NoError(t, err)

			a.Auth.Initialize(ctx)
			require.True(t, a.Auth.Login(ctx, "PIERRE2025"))

			guest, _ := a.Auth.CurrentGuest()
			_, err = a.RSVP.Submit(ctx, rsvp.Submission{
				RecordID:  guest.ID,
				Primary:   rsvp.Response{Status: models.RSVPConfirmed},
				Secondary: &rsvp.Response{Status: models.RSVPDeclined},
			})
			require.NoError(t, err)

			current, _ := a.Auth.CurrentGuest()
			assert.Equal(t, models.ConfirmationPartial, current.ConfirmationStatus)
			require.NoError(t, a.Close())

			// Simulate a restart on the same data directory
			restarted, err := New(ctx, cfg, zerolog.Nop())
			require.NoError(t, err)
			defer restarted.Close()

			restarted.Auth.Initialize(ctx)
			assert.Equal(t, auth.StateAuthenticated, restarted.Auth.State())
			snapshot, ok := restarted.Auth.CurrentGuest()
			require.True(t, ok)
			assert.Equal(t, models.ConfirmationPartial, snapshot.ConfirmationStatus)
			assert.True(t, snapshot.HasCompletedRSVP)
		})
	}
}

func TestMemoryBackendForgetsSession(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendMemory)

	a, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	a.Auth.Initialize(ctx)
	require.True(t, a.Auth.Login(ctx, "JEAN2025"))
	require.NoError(t, a.Close())

	restarted, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	restarted.Auth.Initialize(ctx)
	assert.Equal(t, auth.StateUnauthenticated, restarted.Auth.State())
}
