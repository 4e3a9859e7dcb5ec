package directory

import (
	"errors"
	"fmt"
	"sync"

	"wedding-companion/internal/models"
)

var (
	// ErrNotFound is returned when a lookup or update targets a guest that does not exist.
	ErrNotFound = errors.New("guest not found")
	// ErrDuplicateCode is returned when two records share an invitation code.
	ErrDuplicateCode = errors.New("duplicate invitation code")
	// ErrDuplicateEmail is returned when two records share a primary email.
	ErrDuplicateEmail = errors.New("duplicate primary email")
)

// Patch is a partial GuestRecord. Nil fields are left untouched.
type Patch struct {
	PrimaryGuest       *models.Guest
	SecondaryGuest     *models.Guest
	TableNumber        *string
	NumberOfGuests     *int
	ConfirmationStatus *models.ConfirmationStatus
	InvitationCode     *string
	HasCompletedRSVP   *bool
}

// Directory holds every invitation in memory
type Directory struct {
	mu      sync.RWMutex
	records []models.GuestRecord
}

// New creates a directory from seed records, enforcing the record invariants
func New(records []models.GuestRecord) (*Directory, error) {
	d := &Directory{
		records: make([]models.GuestRecord, 0, len(records)),
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if err := d.checkUnique(r, -1); err != nil {
			return nil, err
		}
		d.records = append(d.records, r.Clone())
	}

	return d, nil
}

// FindByCode returns the record whose invitation code matches exactly
func (d *Directory) FindByCode(code string) (models.GuestRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, r := range d.records {
		if r.InvitationCode == code {
			return r.Clone(), true
		}
	}
	return models.GuestRecord{}, false
}

// FindByEmail returns the record whose primary guest has this email
func (d *Directory) FindByEmail(email string) (models.GuestRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexByEmail(email); i >= 0 {
		return d.records[i].Clone(), true
	}
	return models.GuestRecord{}, false
}

// FindByID returns the record with this id
func (d *Directory) FindByID(id string) (models.GuestRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexByID(id); i >= 0 {
		return d.records[i].Clone(), true
	}
	return models.GuestRecord{}, false
}

// All returns every record in seed order
func (d *Directory) All() []models.GuestRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.GuestRecord, len(d.records))
	for i, r := range d.records {
		out[i] = r.Clone()
	}
	return out
}

// Update merges patch into the record of the given primary email and returns the result.
// The stored record is only replaced when the merged record is still valid.
func (d *Directory) Update(email string, patch Patch) (models.GuestRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexByEmail(email)
	if i < 0 {
		return models.GuestRecord{}, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	return d.replace(i, patch)
}

// UpdateByID merges patch into the record with the given id
func (d *Directory) UpdateByID(id string, patch Patch) (models.GuestRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexByID(id)
	if i < 0 {
		return models.GuestRecord{}, fmt.Errorf("%w: invitation %s", ErrNotFound, id)
	}
	return d.replace(i, patch)
}

// replace must be called with mu held.
func (d *Directory) replace(i int, patch Patch) (models.GuestRecord, error) {
	merged := apply(d.records[i].Clone(), patch)
	if err := merged.Validate(); err != nil {
		return models.GuestRecord{}, err
	}
	if err := d.checkUnique(merged, i); err != nil {
		return models.GuestRecord{}, err
	}

	d.records[i] = merged
	return merged.Clone(), nil
}

func apply(r models.GuestRecord, p Patch) models.GuestRecord {
	if p.PrimaryGuest != nil {
		r.PrimaryGuest = *p.PrimaryGuest
	}
	if p.SecondaryGuest != nil {
		g := *p.SecondaryGuest
		r.SecondaryGuest = &g
	}
	if p.TableNumber != nil {
		r.TableNumber = *p.TableNumber
	}
	if p.NumberOfGuests != nil {
		r.NumberOfGuests = *p.NumberOfGuests
	}
	if p.ConfirmationStatus != nil {
		r.ConfirmationStatus = *p.ConfirmationStatus
	}
	if p.InvitationCode != nil {
		r.InvitationCode = *p.InvitationCode
	}
	if p.HasCompletedRSVP != nil {
		r.HasCompletedRSVP = *p.HasCompletedRSVP
	}
	// Patch values came from the caller; detach them from the stored copy.
	return r.Clone()
}

func (d *Directory) indexByID(id string) int {
	for i, r := range d.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (d *Directory) indexByEmail(email string) int {
	for i, r := range d.records {
		if r.PrimaryGuest.Email == email {
			return i
		}
	}
	return -1
}

// checkUnique verifies r against every stored record except the one at skip.
func (d *Directory) checkUnique(r models.GuestRecord, skip int) error {
	for i, other := range d.records {
		if i == skip {
			continue
		}
		if other.InvitationCode == r.InvitationCode {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, r.InvitationCode)
		}
		if other.PrimaryGuest.Email == r.PrimaryGuest.Email {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, r.PrimaryGuest.Email)
		}
	}
	return nil
}
