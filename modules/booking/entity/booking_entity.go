package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	coreEntity "space-booking-api/core/entity"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	// BookingStatusPending is reserved for a future approval workflow; the
	// admission pipeline never creates it and conflict checks ignore it.
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Participant is one attendee on a booking.
type Participant struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// Participants is stored as a JSONB column.
type Participants []Participant

func (p Participants) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Participants) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

// Booking is a confirmed reservation on a space. The time interval is
// immutable after creation; only the status ever transitions.
type Booking struct {
	SpaceID        uuid.UUID     `db:"space_id" json:"space_id"`
	RequesterID    uuid.UUID     `db:"requester_id" json:"requester_id"`
	RequesterName  string        `db:"requester_name" json:"requester_name"`
	StartTime      time.Time     `db:"start_time" json:"start_time"`
	EndTime        time.Time     `db:"end_time" json:"end_time"`
	Status         BookingStatus `db:"status" json:"status"`
	Participants   Participants  `db:"participants" json:"participants"`
	Notes          *string       `db:"notes" json:"notes,omitempty"`
	SlotIndex      *int          `db:"slot_index" json:"slot_index,omitempty"`
	IdempotencyKey string        `db:"idempotency_key" json:"-"`
	coreEntity.BaseEntity
}

// Summary is the compact shape broadcast to live schedule viewers.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	UserName  string    `json:"userName"`
}

func (b *Booking) Summary() Summary {
	return Summary{
		ID:        b.ID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		UserName:  b.RequesterName,
	}
}

type PaginatedBookings = coreEntity.Pagination[Booking]
