package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wedding-companion/internal/app"
	"wedding-companion/internal/config"
	"wedding-companion/internal/logging"
)

func main() {
	fmt.Println("💍 Wedding Companion")
	fmt.Println("====================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := logging.New(logging.Options{Level: cfg.Level(), File: cfg.LogFile}, os.Stderr)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	companion, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Printf("Error initializing app: %v\n", err)
		os.Exit(1)
	}
	defer companion.Close()

	if companion.WhatsApp != nil {
		fmt.Println("Connecting to WhatsApp...")
		if err := companion.WhatsApp.Connect(ctx); err != nil {
			logger.Warn().Err(err).Msg("WhatsApp unavailable, RSVP confirmations will not be sent")
		}
	}

	// Restore the previous session before accepting any command
	companion.Auth.Initialize(ctx)
	if guest, ok := companion.Auth.CurrentGuest(); ok {
		fmt.Printf("\nBon retour, %s !\n", guest.DisplayName())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		newCLI(companion, os.Stdin, os.Stdout).run(ctx)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}

	fmt.Println("\nÀ bientôt ! 👋")
}
