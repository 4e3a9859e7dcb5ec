package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-companion/internal/api"
	"wedding-companion/internal/directory"
	"wedding-companion/internal/kvstore"
	"wedding-companion/internal/models"
	"wedding-companion/internal/session"
	"wedding-companion/internal/verifier"
	"wedding-companion/internal/wedding"
)

// flakyKV fails every operation while broken is set
type flakyKV struct {
	*kvstore.Memory
	broken bool
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.broken {
		return "", false, errors.New("storage offline")
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.broken {
		return errors.New("storage offline")
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyKV) Remove(ctx context.Context, key string) error {
	if f.broken {
		return errors.New("storage offline")
	}
	return f.Memory.Remove(ctx, key)
}

type fixture struct {
	guests *directory.Directory
	kv     *flakyKV
	store  *session.Store
	auth   *Session
	logs   *bytes.Buffer
}

func setup(t *testing.T) *fixture {
	t.Helper()

	guests, err := directory.New(wedding.SeedGuests())
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)

	kv := &flakyKV{Memory: kvstore.NewMemory()}
	store := session.NewStore(kv, logger)
	v := verifier.New(api.NewMockClient(guests, wedding.NewSeedCatalog(), api.Latency{}, logger))

	n := 0
	tokens := WithTokenFunc(func() string {
		n++
		return fmt.Sprintf("auth-token-%d", n)
	})

	return &fixture{
		guests: guests,
		kv:     kv,
		store:  store,
		auth:   New(v, store, logger, tokens),
		logs:   logs,
	}
}

func TestInitialize_NoSession(t *testing.T) {
	f := setup(t)
	assert.Equal(t, StateUnknown, f.auth.State())

	f.auth.Initialize(context.Background())
	assert.Equal(t, StateUnauthenticated, f.auth.State())
	_, ok := f.auth.CurrentGuest()
	assert.False(t, ok)
}

func TestInitialize_RestoresSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	guest, _ := f.guests.FindByCode("SOPHIE2025")
	require.NoError(t, f.store.Save(ctx, models.Session{Token: "saved", Guest: guest}))

	f.auth.Initialize(ctx)
	assert.Equal(t, StateAuthenticated, f.auth.State())
	got, ok := f.auth.CurrentGuest()
	require.True(t, ok)
	assert.Equal(t, guest, got)
	token, _ := f.auth.Token()
	assert.Equal(t, "saved", token)
}

func TestInitialize_InvalidSnapshot(t *testing.T) {
	for _, snapshot := range []string{"null", "{}"} {
		t.Run(snapshot, func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()
			require.NoError(t, f.kv.Set(ctx, session.TokenKey, "tok"))
			require.NoError(t, f.kv.Set(ctx, session.GuestKey, snapshot))

			f.auth.Initialize(ctx)
			assert.Equal(t, StateUnauthenticated, f.auth.State())
			_, ok := f.auth.CurrentGuest()
			assert.False(t, ok)
			assert.Contains(t, f.logs.String(), "Discarding invalid guest snapshot")
		})
	}
}

func TestInitialize_StorageFailure(t *testing.T) {
	f := setup(t)
	f.kv.broken = true

	f.auth.Initialize(context.Background())
	assert.Equal(t, StateUnauthenticated, f.auth.State())
	assert.True(t, errors.Is(f.auth.LastError(), session.ErrStorage))
	assert.Contains(t, f.logs.String(), "Could not restore session")
}

func TestLogin_BeforeInitialize(t *testing.T) {
	f := setup(t)

	assert.False(t, f.auth.Login(context.Background(), "JEAN2025"))
	assert.Equal(t, StateUnknown, f.auth.State())
	assert.True(t, errors.Is(f.auth.LastError(), ErrNotInitialized))
}

func TestLogin_MatchesDirectory(t *testing.T) {
	codes := []string{"JEAN2025", "SOPHIE2025", "PIERRE2025", "LUCAS2025", "jean2025", "UNKNOWN", ""}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()
			f.auth.Initialize(ctx)

			want, known := f.guests.FindByCode(code)
			assert.Equal(t, known, f.auth.Login(ctx, code))

			got, ok := f.auth.CurrentGuest()
			assert.Equal(t, known, ok)
			if known {
				assert.Equal(t, want, got)
				assert.Equal(t, StateAuthenticated, f.auth.State())
				assert.NoError(t, f.auth.LastError())
			} else {
				assert.Equal(t, StateUnauthenticated, f.auth.State())
				assert.True(t, errors.Is(f.auth.LastError(), verifier.ErrInvalidCode))
			}
		})
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)

	require.True(t, f.auth.Login(ctx, "PIERRE2025"))

	saved, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "auth-token-1", saved.Token)
	assert.Equal(t, "3", saved.Guest.ID)

	restarted := New(verifier.New(api.NewMockClient(f.guests, wedding.NewSeedCatalog(), api.Latency{}, zerolog.Nop())), f.store, zerolog.Nop())
	restarted.Initialize(ctx)
	got, ok := restarted.CurrentGuest()
	require.True(t, ok)
	assert.Equal(t, "3", got.ID)
}

func TestLogin_SaveFailureDegrades(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)
	f.kv.broken = true

	assert.True(t, f.auth.Login(ctx, "JEAN2025"))
	assert.Equal(t, StateAuthenticated, f.auth.State())
	assert.True(t, errors.Is(f.auth.LastError(), session.ErrStorage))
	assert.Contains(t, f.logs.String(), "Session not persisted")

	f.kv.broken = false
	saved, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestLogin_TokensAreUnique(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)

	require.True(t, f.auth.Login(ctx, "JEAN2025"))
	first, _ := f.auth.Token()
	require.True(t, f.auth.Login(ctx, "JEAN2025"))
	second, _ := f.auth.Token()
	assert.NotEqual(t, first, second)

	assert.NotEqual(t, NewToken(), NewToken())
}

func TestLogout_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)
	require.True(t, f.auth.Login(ctx, "JEAN2025"))

	f.auth.Logout(ctx)
	f.auth.Logout(ctx)

	assert.Equal(t, StateUnauthenticated, f.auth.State())
	_, ok := f.auth.CurrentGuest()
	assert.False(t, ok)
	assert.NoError(t, f.auth.LastError())

	saved, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestLogout_ClearFailure(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)
	require.True(t, f.auth.Login(ctx, "JEAN2025"))

	f.kv.broken = true
	f.auth.Logout(ctx)

	assert.Equal(t, StateUnauthenticated, f.auth.State())
	_, ok := f.auth.CurrentGuest()
	assert.False(t, ok)
	assert.Error(t, f.auth.LastError())
}

func TestRefresh(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)
	require.True(t, f.auth.Login(ctx, "PIERRE2025"))

	other, _ := f.guests.FindByCode("JEAN2025")
	other.TableNumber = "99"
	f.auth.Refresh(ctx, other)
	got, _ := f.auth.CurrentGuest()
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "3", got.TableNumber)

	mine, _ := f.guests.FindByCode("PIERRE2025")
	mine.TableNumber = "8"
	f.auth.Refresh(ctx, mine)

	got, _ = f.auth.CurrentGuest()
	assert.Equal(t, "8", got.TableNumber)
	saved, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8", saved.Guest.TableNumber)
	assert.Equal(t, "auth-token-1", saved.Token)
}

func TestCurrentGuestReturnsCopy(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.auth.Initialize(ctx)
	require.True(t, f.auth.Login(ctx, "JEAN2025"))

	g, _ := f.auth.CurrentGuest()
	g.SecondaryGuest.Name = "changed"

	again, _ := f.auth.CurrentGuest()
	assert.Equal(t, "Marie Dupont", again.SecondaryGuest.Name)
}
