package rsvp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wedding-companion/internal/directory"
	"wedding-companion/internal/models"
)

// ErrValidation is returned for a malformed submission. Nothing is written.
var ErrValidation = errors.New("invalid rsvp submission")

// Response is one invitee's answer
type Response struct {
	Status              models.RSVPStatus
	DietaryRestrictions []string
}

// Submission is the RSVP form of one invitation.
// Secondary must be set exactly when the invitation is for a couple.
type Submission struct {
	RecordID  string
	Primary   Response
	Secondary *Response
}

// Guests is the part of the directory the reconciler writes through
type Guests interface {
	FindByID(id string) (models.GuestRecord, bool)
	UpdateByID(id string, patch directory.Patch) (models.GuestRecord, error)
}

// SessionSyncer keeps the persisted session snapshot in step with the directory
type SessionSyncer interface {
	Refresh(ctx context.Context, guest models.GuestRecord)
}

// Notifier tells guests their answer was recorded
type Notifier interface {
	NotifyRSVP(ctx context.Context, guest models.GuestRecord) error
}

// Reconciler applies RSVP submissions to guest records
type Reconciler struct {
	guests   Guests
	session  SessionSyncer
	notifier Notifier
	log      zerolog.Logger
}

// NewReconciler creates a reconciler. session and notifier may be nil.
func NewReconciler(guests Guests, session SessionSyncer, notifier Notifier, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		guests:   guests,
		session:  session,
		notifier: notifier,
		log:      logger.With().Str("component", "RSVP").Logger(),
	}
}

// Submit validates s, applies it to the invitation and returns the updated record
func (r *Reconciler) Submit(ctx context.Context, s Submission) (models.GuestRecord, error) {
	record, ok := r.guests.FindByID(s.RecordID)
	if !ok {
		return models.GuestRecord{}, fmt.Errorf("%w: invitation %s", directory.ErrNotFound, s.RecordID)
	}
	if err := validate(record, s); err != nil {
		return models.GuestRecord{}, err
	}

	primary := answer(record.PrimaryGuest, s.Primary)
	statuses := []models.RSVPStatus{primary.RSVPStatus}
	patch := directory.Patch{PrimaryGuest: &primary}

	if s.Secondary != nil {
		secondary := answer(*record.SecondaryGuest, *s.Secondary)
		statuses = append(statuses, secondary.RSVPStatus)
		patch.SecondaryGuest = &secondary
	}

	aggregate := Aggregate(statuses...)
	completed := true
	patch.ConfirmationStatus = &aggregate
	patch.HasCompletedRSVP = &completed

	updated, err := r.guests.UpdateByID(record.ID, patch)
	if err != nil {
		return models.GuestRecord{}, fmt.Errorf("failed to update invitation %s: %w", record.ID, err)
	}

	r.log.Info().
		Str("guest_id", updated.ID).
		Str("status", string(updated.ConfirmationStatus)).
		Msg("RSVP recorded")

	if r.session != nil {
		r.session.Refresh(ctx, updated)
	}
	if r.notifier != nil {
		if err := r.notifier.NotifyRSVP(ctx, updated); err != nil {
			r.log.Error().Err(err).Str("guest_id", updated.ID).Msg("Error sending RSVP confirmation")
		}
	}

	return updated, nil
}

// Aggregate derives the invitation status from its invitees' answers
func Aggregate(statuses ...models.RSVPStatus) models.ConfirmationStatus {
	var confirmed, declined int
	for _, s := range statuses {
		switch s {
		case models.RSVPConfirmed:
			confirmed++
		case models.RSVPDeclined:
			declined++
		}
	}
	switch {
	case len(statuses) == 0 || confirmed+declined < len(statuses):
		return models.ConfirmationPending
	case confirmed == len(statuses):
		return models.ConfirmationConfirmed
	case declined == len(statuses):
		return models.ConfirmationCancelled
	default:
		return models.ConfirmationPartial
	}
}

func validate(record models.GuestRecord, s Submission) error {
	if !s.Primary.Status.Answered() {
		return fmt.Errorf("%w: primary guest status must be confirmed or declined, got %q", ErrValidation, s.Primary.Status)
	}
	switch record.InvitationType {
	case models.InvitationCouple:
		if s.Secondary == nil {
			return fmt.Errorf("%w: couple invitation %s requires an answer for the second guest", ErrValidation, record.ID)
		}
		if !s.Secondary.Status.Answered() {
			return fmt.Errorf("%w: secondary guest status must be confirmed or declined, got %q", ErrValidation, s.Secondary.Status)
		}
	default:
		if s.Secondary != nil {
			return fmt.Errorf("%w: single invitation %s cannot answer for a second guest", ErrValidation, record.ID)
		}
	}
	return nil
}

// answer applies a response to an invitee. Declined guests keep no restrictions.
func answer(g models.Guest, resp Response) models.Guest {
	g.RSVPStatus = resp.Status
	g.DietaryRestrictions = []string{}
	if resp.Status != models.RSVPConfirmed {
		return g
	}

	seen := make(map[string]struct{})
	for _, d := range resp.DietaryRestrictions {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		g.DietaryRestrictions = append(g.DietaryRestrictions, d)
	}
	return g
}
