package handler

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types/events"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"wedding-companion/internal/models"
	"wedding-companion/internal/rsvp"
	"wedding-companion/internal/whatsapp"
)

// Guests lists the invitations a reply can belong to
type Guests interface {
	All() []models.GuestRecord
}

// Submitter records RSVP answers
type Submitter interface {
	Submit(ctx context.Context, s rsvp.Submission) (models.GuestRecord, error)
}

// Replier sends a text back to the guest
type Replier interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// RSVPHandler turns WhatsApp replies ("oui" / "non") into RSVP submissions
type RSVPHandler struct {
	guests  Guests
	rsvp    Submitter
	replier Replier
	log     zerolog.Logger
}

// NewRSVPHandler creates a new RSVP reply handler. replier may be nil.
func NewRSVPHandler(guests Guests, submitter Submitter, replier Replier, logger zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		guests:  guests,
		rsvp:    submitter,
		replier: replier,
		log:     logger.With().Str("component", "RSVPHandler").Logger(),
	}
}

// HandleMessage processes incoming WhatsApp messages for RSVP responses
func (h *RSVPHandler) HandleMessage(msg *events.Message) error {
	if msg.Message == nil {
		return nil
	}
	text := msg.Message.GetConversation()
	if text == "" {
		return nil
	}
	// Linked devices send as user:device@server
	sender := msg.Info.Sender.ToNonAD().User

	_, err := h.HandleText(context.Background(), sender, text)
	return err
}

// HandleText applies a reply sent from phoneNumber. It reports whether the
// text was understood as an RSVP from a known guest.
func (h *RSVPHandler) HandleText(ctx context.Context, phoneNumber, text string) (bool, error) {
	record, ok := h.findByPhone(phoneNumber)
	if !ok {
		// Not one of our guests - ignore
		return false, nil
	}

	status, ok := parseAnswer(text)
	if !ok {
		return false, nil
	}

	sub := rsvp.Submission{
		RecordID: record.ID,
		Primary:  rsvp.Response{Status: status, DietaryRestrictions: record.PrimaryGuest.DietaryRestrictions},
	}
	if record.SecondaryGuest != nil {
		sub.Secondary = &rsvp.Response{Status: status, DietaryRestrictions: record.SecondaryGuest.DietaryRestrictions}
	}

	updated, err := h.rsvp.Submit(ctx, sub)
	if err != nil {
		return true, fmt.Errorf("failed to update RSVP: %w", err)
	}
	h.log.Info().Str("guest_id", updated.ID).Str("status", string(status)).Msg("RSVP received over WhatsApp")

	if h.replier != nil {
		reply := fmt.Sprintf("Merci %s, votre réponse est enregistrée : %s.", updated.DisplayName(), updated.ConfirmationStatus.Label())
		if err := h.replier.SendMessage(ctx, phoneNumber, reply); err != nil {
			return true, fmt.Errorf("failed to send confirmation: %w", err)
		}
	}
	return true, nil
}

func (h *RSVPHandler) findByPhone(phoneNumber string) (models.GuestRecord, bool) {
	want := whatsapp.NormalizePhoneNumber(phoneNumber)
	if want == "" {
		return models.GuestRecord{}, false
	}
	for _, r := range h.guests.All() {
		for _, g := range r.Invitees() {
			if whatsapp.NormalizePhoneNumber(g.Phone) == want {
				return r, true
			}
		}
	}
	return models.GuestRecord{}, false
}

var (
	declineWords = map[string]bool{"non": true, "no": true, "absent": true, "absente": true, "absents": true}
	confirmWords = map[string]bool{"oui": true, "yes": true, "present": true, "presente": true, "presents": true, "confirme": true}
)

// foldAccents strips diacritics so "présente" and "presente" read the same
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// parseAnswer maps a free-text reply to an attendance answer. Declines win
// over confirmations when both appear.
func parseAnswer(text string) (models.RSVPStatus, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.FieldsFunc(foldAccents(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	if strings.Contains(text, "❌") || containsAny(words, declineWords) {
		return models.RSVPDeclined, true
	}
	if strings.Contains(text, "✅") || containsAny(words, confirmWords) {
		return models.RSVPConfirmed, true
	}
	return "", false
}

// containsAny checks if any of the words is a keyword
func containsAny(words []string, keywords map[string]bool) bool {
	for _, w := range words {
		if keywords[w] {
			return true
		}
	}
	return false
}
