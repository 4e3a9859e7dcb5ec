package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"wedding-companion/internal/directory"
	"wedding-companion/internal/models"
	"wedding-companion/internal/rsvp"
	"wedding-companion/internal/wedding"
)

type sentMessage struct {
	phone, text string
}

type fakeReplier struct {
	sent []sentMessage
	err  error
}

func (f *fakeReplier) SendMessage(_ context.Context, phone, text string) error {
	f.sent = append(f.sent, sentMessage{phone, text})
	return f.err
}

func setupHandler(t *testing.T) (*directory.Directory, *fakeReplier, *RSVPHandler) {
	t.Helper()

	guests, err := directory.New(wedding.SeedGuests())
	require.NoError(t, err)
	replier := &fakeReplier{}
	reconciler := rsvp.NewReconciler(guests, nil, nil, zerolog.Nop())
	return guests, replier, NewRSVPHandler(guests, reconciler, replier, zerolog.Nop())
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		text   string
		want   models.RSVPStatus
		wantOK bool
	}{
		{"Oui !", models.RSVPConfirmed, true},
		{"oui, nous serons présents", models.RSVPConfirmed, true},
		{"Presente", models.RSVPConfirmed, true},
		{"Confirmé", models.RSVPConfirmed, true},
		{"✅", models.RSVPConfirmed, true},
		{"Non, désolé", models.RSVPDeclined, true},
		{"❌", models.RSVPDeclined, true},
		{"Je serai absente", models.RSVPDeclined, true},
		{"Bonjour, à quelle heure ?", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseAnswer(tt.text)
		assert.Equal(t, tt.wantOK, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestHandleText_CoupleConfirms(t *testing.T) {
	guests, replier, h := setupHandler(t)

	handled, err := h.HandleText(context.Background(), "33634567890", "Oui, avec plaisir")
	require.NoError(t, err)
	assert.True(t, handled)

	pierre, _ := guests.FindByCode("PIERRE2025")
	assert.Equal(t, models.ConfirmationConfirmed, pierre.ConfirmationStatus)
	assert.True(t, pierre.HasCompletedRSVP)
	assert.Equal(t, []string{"Sans lactose"}, pierre.SecondaryGuest.DietaryRestrictions)

	require.Len(t, replier.sent, 1)
	assert.Contains(t, replier.sent[0].text, "Pierre & Claire Dubois")
	assert.Contains(t, replier.sent[0].text, "Confirmé")
}

func TestHandleText_SecondaryPhoneDeclines(t *testing.T) {
	guests, _, h := setupHandler(t)

	handled, err := h.HandleText(context.Background(), "+33 6 34 56 78 91", "non")
	require.NoError(t, err)
	assert.True(t, handled)

	pierre, _ := guests.FindByCode("PIERRE2025")
	assert.Equal(t, models.ConfirmationCancelled, pierre.ConfirmationStatus)
}

func TestHandleText_Ignored(t *testing.T) {
	guests, replier, h := setupHandler(t)
	before := guests.All()

	handled, err := h.HandleText(context.Background(), "15550109999", "oui")
	require.NoError(t, err)
	assert.False(t, handled, "unknown sender")

	handled, err = h.HandleText(context.Background(), "33634567890", "c'est où ?")
	require.NoError(t, err)
	assert.False(t, handled, "not an answer")

	assert.Equal(t, before, guests.All())
	assert.Empty(t, replier.sent)
}

func TestHandleText_ReplyFailure(t *testing.T) {
	guests, replier, h := setupHandler(t)
	replier.err = errors.New("offline")

	handled, err := h.HandleText(context.Background(), "33623456789", "non")
	assert.True(t, handled)
	assert.Error(t, err)

	sophie, _ := guests.FindByCode("SOPHIE2025")
	assert.Equal(t, models.ConfirmationCancelled, sophie.ConfirmationStatus, "answer is kept even if the reply fails")
}

func TestHandleMessage_LinkedDeviceSender(t *testing.T) {
	guests, replier, h := setupHandler(t)

	text := "oui"
	msg := &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Sender: types.JID{User: "33623456789", Device: 12, Server: types.DefaultUserServer},
			},
		},
		Message: &waE2E.Message{Conversation: &text},
	}
	require.NoError(t, h.HandleMessage(msg))

	sophie, _ := guests.FindByCode("SOPHIE2025")
	assert.Equal(t, models.ConfirmationConfirmed, sophie.ConfirmationStatus)
	require.Len(t, replier.sent, 1)
	assert.Equal(t, "33623456789", replier.sent[0].phone)
}
