// Package app wires the companion's components together.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"wedding-companion/internal/api"
	"wedding-companion/internal/auth"
	"wedding-companion/internal/config"
	"wedding-companion/internal/directory"
	"wedding-companion/internal/handler"
	"wedding-companion/internal/kvstore"
	"wedding-companion/internal/rsvp"
	"wedding-companion/internal/session"
	"wedding-companion/internal/verifier"
	"wedding-companion/internal/wedding"
	"wedding-companion/internal/whatsapp"
)

// App holds every long-lived component, constructed once at startup
type App struct {
	Guests   *directory.Directory
	Catalog  *wedding.Catalog
	API      api.Client
	Verifier *verifier.Verifier
	Sessions *session.Store
	Auth     *auth.Session
	RSVP     *rsvp.Reconciler
	WhatsApp *whatsapp.Service
	Replies  *handler.RSVPHandler

	closers []func() error
}

// New builds the app from seed data and cfg. The auth session is left in the
// Unknown state; callers run Auth.Initialize before anything else.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{}

	guests, err := directory.New(wedding.SeedGuests())
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	a.Guests = guests
	a.Catalog = wedding.NewSeedCatalog()
	a.API = api.NewMockClient(guests, a.Catalog, api.DefaultLatency().Scale(cfg.APILatencyScale), logger)
	a.Verifier = verifier.New(a.API)

	kv, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Sessions = session.NewStore(kv, logger)
	a.Auth = auth.New(a.Verifier, a.Sessions, logger)

	var notifier rsvp.Notifier
	if cfg.WhatsAppEnabled {
		wa, err := whatsapp.NewService(ctx, &whatsapp.Config{
			DataDir: cfg.WhatsAppDir(),
			Wedding: a.Catalog.Info(),
		}, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize WhatsApp: %w", err)
		}
		a.WhatsApp = wa
		notifier = wa
	}

	a.RSVP = rsvp.NewReconciler(guests, a.Auth, notifier, logger)

	if a.WhatsApp != nil {
		a.Replies = handler.NewRSVPHandler(guests, a.RSVP, a.WhatsApp, logger)
		a.WhatsApp.SetMessageHandler(a.Replies.HandleMessage)
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return kvstore.NewMemory(), nil
	case config.BackendSQLite:
		db, err := kvstore.NewSQLite(ctx, cfg.SessionPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open session database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return db, nil
	default:
		f, err := kvstore.NewFile(cfg.SessionPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open session file: %w", err)
		}
		return f, nil
	}
}

// Close releases the resources held by the app
func (a *App) Close() error {
	if a.WhatsApp != nil {
		a.WhatsApp.Disconnect()
	}
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
