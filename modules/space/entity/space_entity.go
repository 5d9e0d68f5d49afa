package entity

import (
	"time"

	coreEntity "space-booking-api/core/entity"

	"github.com/google/uuid"
)

// Space is a bookable resource owned by an organization: a court, a field,
// a meeting room.
type Space struct {
	OrgID    uuid.UUID `db:"org_id" json:"org_id"`
	Name     string    `db:"name" json:"name"`
	Slug     string    `db:"slug" json:"slug"`
	Timezone string    `db:"timezone" json:"timezone"`
	IsActive bool      `db:"is_active" json:"is_active"`
	coreEntity.BaseEntity
}

// Location resolves the space's configured time zone, falling back to UTC
// when the stored name is invalid.
func (s *Space) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type PaginatedSpaces = coreEntity.Pagination[Space]

// BookingRules is the per-space booking policy, one row per space, mutated
// only by organization administrators. The admission pipeline treats it as
// read-only.
type BookingRules struct {
	SpaceID             uuid.UUID `db:"space_id" json:"space_id"`
	SlotDurationMinutes int       `db:"slot_duration_minutes" json:"slot_duration_minutes"`
	OpenTime            string    `db:"open_time" json:"open_time"`   // "HH:MM" local to the space
	CloseTime           string    `db:"close_time" json:"close_time"` // "HH:MM" local to the space
	MaxAdvanceDays      int       `db:"max_advance_days" json:"max_advance_days"`
	MaxDurationMinutes  int       `db:"max_duration_minutes" json:"max_duration_minutes"`
	AllowRecurring      bool      `db:"allow_recurring" json:"allow_recurring"`
	BufferMinutes       int       `db:"buffer_minutes" json:"buffer_minutes"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultRules is applied to a newly created space until an administrator
// edits the policy.
func DefaultRules(spaceID uuid.UUID) *BookingRules {
	return &BookingRules{
		SpaceID:             spaceID,
		SlotDurationMinutes: 60,
		OpenTime:            "08:00",
		CloseTime:           "22:00",
		MaxAdvanceDays:      30,
		MaxDurationMinutes:  180,
		AllowRecurring:      false,
		BufferMinutes:       0,
	}
}

// OpenCloseOn resolves the open/close window instants for the calendar day
// containing t in the given location.
func (r *BookingRules) OpenCloseOn(t time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := t.In(loc)
	open, err := atClock(local, r.OpenTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeAt, err := atClock(local, r.CloseTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return open, closeAt, nil
}

func atClock(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
