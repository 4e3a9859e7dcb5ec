package models

import (
	"errors"
	"fmt"
	"strings"
)

// RSVPStatus represents the attendance answer of a single invitee
type RSVPStatus string

const (
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
	RSVPPending   RSVPStatus = "pending"
)

// Valid reports whether s is one of the known statuses
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPConfirmed, RSVPDeclined, RSVPPending:
		return true
	}
	return false
}

// Answered reports whether the invitee has responded
func (s RSVPStatus) Answered() bool {
	return s == RSVPConfirmed || s == RSVPDeclined
}

// InvitationType distinguishes invitations for one or two people
type InvitationType string

const (
	InvitationSingle InvitationType = "single"
	InvitationCouple InvitationType = "couple"
)

// ConfirmationStatus is the display-level aggregate of an invitation
type ConfirmationStatus string

const (
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationCancelled ConfirmationStatus = "cancelled"
	// ConfirmationPartial means some invitees confirmed and others declined.
	ConfirmationPartial ConfirmationStatus = "partial"
)

// Label returns the text shown to guests
func (s ConfirmationStatus) Label() string {
	switch s {
	case ConfirmationConfirmed:
		return "Confirmé"
	case ConfirmationCancelled:
		return "Annulé"
	case ConfirmationPartial:
		return "Partiel"
	default:
		return "En attente"
	}
}

// ErrInvalidRecord is returned when a GuestRecord breaks one of its invariants.
var ErrInvalidRecord = errors.New("invalid guest record")

// Guest represents a single invitee
type Guest struct {
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	DietaryRestrictions []string   `json:"dietaryRestrictions"`
	RSVPStatus          RSVPStatus `json:"rsvpStatus"`
}

// GuestRecord represents one invitation, for one or two invitees
type GuestRecord struct {
	ID                 string             `json:"id"`
	InvitationType     InvitationType     `json:"invitationType"`
	PrimaryGuest       Guest              `json:"primaryGuest"`
	SecondaryGuest     *Guest             `json:"secondaryGuest,omitempty"`
	TableNumber        string             `json:"tableNumber"`
	NumberOfGuests     int                `json:"numberOfGuests"`
	ConfirmationStatus ConfirmationStatus `json:"confirmationStatus"`
	InvitationCode     string             `json:"invitationCode"`
	HasCompletedRSVP   bool               `json:"hasCompletedRSVP"`
	RegistrationDate   Date               `json:"registrationDate"`
}

// LegacyView is the flattened shape older screens display
type LegacyView struct {
	Name                string
	Email               string
	Phone               string
	DietaryRestrictions string
}

// Validate checks the invariants of a single record
func (r GuestRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.PrimaryGuest.Email) == "" {
		return fmt.Errorf("%w: record %s has no primary email", ErrInvalidRecord, r.ID)
	}
	if strings.TrimSpace(r.InvitationCode) == "" {
		return fmt.Errorf("%w: record %s has no invitation code", ErrInvalidRecord, r.ID)
	}
	switch r.InvitationType {
	case InvitationSingle:
		if r.SecondaryGuest != nil {
			return fmt.Errorf("%w: single invitation %s has a secondary guest", ErrInvalidRecord, r.ID)
		}
	case InvitationCouple:
		if r.SecondaryGuest == nil {
			return fmt.Errorf("%w: couple invitation %s has no secondary guest", ErrInvalidRecord, r.ID)
		}
	default:
		return fmt.Errorf("%w: record %s has unknown invitation type %q", ErrInvalidRecord, r.ID, r.InvitationType)
	}
	if r.NumberOfGuests < 1 {
		return fmt.Errorf("%w: record %s must count at least one guest", ErrInvalidRecord, r.ID)
	}
	for _, g := range r.Invitees() {
		if !g.RSVPStatus.Valid() {
			return fmt.Errorf("%w: guest %q has unknown rsvp status %q", ErrInvalidRecord, g.Name, g.RSVPStatus)
		}
		if r.HasCompletedRSVP && !g.RSVPStatus.Answered() {
			return fmt.Errorf("%w: record %s completed rsvp but %q is still pending", ErrInvalidRecord, r.ID, g.Name)
		}
	}
	return nil
}

// Invitees returns the primary guest followed by the secondary one, if any
func (r GuestRecord) Invitees() []Guest {
	if r.SecondaryGuest == nil {
		return []Guest{r.PrimaryGuest}
	}
	return []Guest{r.PrimaryGuest, *r.SecondaryGuest}
}

// DisplayName returns the name shown on the invitation.
// Couples sharing a surname are rendered as "Jean & Marie Dupont".
func (r GuestRecord) DisplayName() string {
	if r.SecondaryGuest == nil {
		return r.PrimaryGuest.Name
	}
	first, firstLast := splitName(r.PrimaryGuest.Name)
	second, secondLast := splitName(r.SecondaryGuest.Name)
	if firstLast != "" && firstLast == secondLast {
		return fmt.Sprintf("%s & %s %s", first, second, firstLast)
	}
	return fmt.Sprintf("%s & %s", r.PrimaryGuest.Name, r.SecondaryGuest.Name)
}

// AllDietaryRestrictions merges the restrictions of every invitee, keeping first-seen order
func (r GuestRecord) AllDietaryRestrictions() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range r.Invitees() {
		for _, d := range g.DietaryRestrictions {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// Legacy derives the flattened view from the canonical record
func (r GuestRecord) Legacy() LegacyView {
	return LegacyView{
		Name:                r.DisplayName(),
		Email:               r.PrimaryGuest.Email,
		Phone:               r.PrimaryGuest.Phone,
		DietaryRestrictions: strings.Join(r.AllDietaryRestrictions(), ", "),
	}
}

// Clone returns a deep copy that shares no slices or pointers with r
func (r GuestRecord) Clone() GuestRecord {
	out := r
	out.PrimaryGuest = r.PrimaryGuest.clone()
	if r.SecondaryGuest != nil {
		g := r.SecondaryGuest.clone()
		out.SecondaryGuest = &g
	}
	return out
}

func (g Guest) clone() Guest {
	out := g
	if g.DietaryRestrictions != nil {
		out.DietaryRestrictions = append([]string(nil), g.DietaryRestrictions...)
	}
	return out
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	i := strings.LastIndex(full, " ")
	if i < 0 {
		return full, ""
	}
	return full[:i], full[i+1:]
}
