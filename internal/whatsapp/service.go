package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"wedding-companion/internal/badge"
	"wedding-companion/internal/models"
)

// sendAttempts bounds retries of a single outgoing message
const sendAttempts = 3

// MessageHandler is a callback function for handling messages
type MessageHandler func(*events.Message) error

type Config struct {
	DataDir string
	Wedding models.WeddingInfo
}

// Service delivers RSVP confirmations over WhatsApp
type Service struct {
	client         *whatsmeow.Client
	cfg            *Config
	log            zerolog.Logger
	messageHandler MessageHandler
}

// NewService creates a new WhatsApp service
func NewService(ctx context.Context, cfg *Config, logger zerolog.Logger) (*Service, error) {
	log := logger.With().Str("component", "WhatsApp").Logger()

	// Use nil logger - sqlstore will use a no-op logger by default
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.DataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)

	service := &Service{
		client: client,
		cfg:    cfg,
		log:    log,
	}

	client.AddEventHandler(func(evt interface{}) {
		service.eventHandler(evt)
	})

	return service, nil
}

// NormalizePhoneNumber reduces a phone number to digits in international format.
// French numbers written nationally (06 12 34 56 78) become 33612345678.
func NormalizePhoneNumber(phoneNumber string) string {
	var b strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	phoneNumber = b.String()

	if strings.HasPrefix(phoneNumber, "0") && len(phoneNumber) == 10 {
		phoneNumber = "33" + phoneNumber[1:]
	}

	// +33 (0)6 ... is a common way of writing French numbers
	if strings.HasPrefix(phoneNumber, "330") && len(phoneNumber) == 12 {
		phoneNumber = "33" + phoneNumber[3:]
	}

	return phoneNumber
}

// Connect connects to WhatsApp, printing a pairing QR code on first use
func (s *Service) Connect(ctx context.Context) error {
	if s.client.Store.ID != nil {
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	for evt := range qrChan {
		if evt.Event != "code" {
			s.log.Info().Str("event", evt.Event).Msg("Login event")
			continue
		}
		block, err := badge.Terminal(evt.Code)
		if err != nil {
			fmt.Printf("QR Code: %s\n", evt.Code)
		} else {
			fmt.Println("\n" + block)
		}
		fmt.Println("📱 Scan this QR code from WhatsApp > Settings > Linked Devices to send RSVP confirmations.")
	}
	return nil
}

// Disconnect disconnects from WhatsApp
func (s *Service) Disconnect() {
	s.client.Disconnect()
}

// NotifyRSVP sends the primary guest a summary of the recorded answer
func (s *Service) NotifyRSVP(ctx context.Context, guest models.GuestRecord) error {
	if strings.TrimSpace(guest.PrimaryGuest.Phone) == "" {
		return fmt.Errorf("guest %s has no phone number", guest.ID)
	}
	return s.SendMessage(ctx, guest.PrimaryGuest.Phone, RSVPMessage(guest, s.cfg.Wedding))
}

// SendMessage sends a simple text message
func (s *Service) SendMessage(ctx context.Context, phoneNumber, message string) error {
	phoneNumber = NormalizePhoneNumber(phoneNumber)

	// Verify the number is on WhatsApp before sending
	resp, err := s.client.IsOnWhatsApp(ctx, []string{"+" + phoneNumber})
	if err != nil {
		return fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("number %s is not registered on WhatsApp", phoneNumber)
	}

	// Use the verified JID from WhatsApp
	jid := resp[0].JID
	if jid.IsEmpty() {
		jid = types.NewJID(phoneNumber, types.DefaultUserServer)
	}

	s.log.Debug().Str("jid", jid.String()).Str("phone", phoneNumber).Msg("Attempting to send message")

	var sent whatsmeow.SendResponse
	err = retry.Do(
		func() error {
			var err error
			sent, err = s.client.SendMessage(ctx, jid, &waE2E.Message{
				Conversation: &message,
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(sendAttempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn().Err(err).Uint("attempt", n+1).Str("phone", phoneNumber).Msg("Retrying message")
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", phoneNumber, err)
	}

	s.log.Info().Str("id", string(sent.ID)).Str("phone", phoneNumber).Msg("Message sent")
	return nil
}

// RSVPMessage builds the confirmation text for an invitation
func RSVPMessage(guest models.GuestRecord, info models.WeddingInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💌 *%s*\n\n", info.CoupleName)
	fmt.Fprintf(&b, "Bonjour %s,\n\n", guest.DisplayName())

	switch guest.ConfirmationStatus {
	case models.ConfirmationConfirmed:
		fmt.Fprintf(&b, "Votre présence est confirmée pour le %s. Nous avons hâte de célébrer avec vous !\n", info.Date)
	case models.ConfirmationCancelled:
		b.WriteString("Nous avons bien noté votre absence. Vous nous manquerez !\n")
	default:
		b.WriteString("Nous avons bien reçu votre réponse :\n")
	}

	for _, g := range guest.Invitees() {
		mark := "❌"
		if g.RSVPStatus == models.RSVPConfirmed {
			mark = "✅"
		}
		fmt.Fprintf(&b, "\n%s %s", mark, g.Name)
		if g.RSVPStatus == models.RSVPConfirmed && len(g.DietaryRestrictions) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(g.DietaryRestrictions, ", "))
		}
	}

	if guest.ConfirmationStatus != models.ConfirmationCancelled && guest.TableNumber != "" {
		fmt.Fprintf(&b, "\n\n🍽 Table %s", guest.TableNumber)
	}
	if info.Venue.Name != "" {
		fmt.Fprintf(&b, "\n📍 %s, %s", info.Venue.Name, info.Venue.Address)
	}
	return b.String()
}

// eventHandler handles incoming WhatsApp events
func (s *Service) eventHandler(evt interface{}) {
	if evt == nil {
		return
	}
	switch evt := evt.(type) {
	case *events.Message:
		s.handleMessage(evt)
	case *events.Connected:
		s.log.Info().Msg("Connected to WhatsApp")
	case *events.Disconnected:
		s.log.Info().Msg("Disconnected from WhatsApp")
	case *events.LoggedOut:
		s.log.Info().Msg("Logged out from WhatsApp")
	}
}

// handleMessage processes incoming messages
func (s *Service) handleMessage(msg *events.Message) {
	// Skip messages from self
	if msg.Info.IsFromMe {
		return
	}

	if s.messageHandler != nil {
		if err := s.messageHandler(msg); err != nil {
			s.log.Error().Err(err).Msg("Error handling message")
		}
		return
	}
	s.log.Info().
		Str("sender", msg.Info.Sender.String()).
		Str("message", msg.Message.GetConversation()).
		Msg("Received message")
}

// SetMessageHandler sets a custom handler for incoming messages
func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}
