package dto

import (
	"time"

	bookingEntity "space-booking-api/modules/booking/entity"
)

// SSE event types for live schedule viewers.
const (
	EventSlotUpdate       = "SLOT_UPDATE"
	EventBookingCreated   = "BOOKING_CREATED"
	EventBookingCancelled = "BOOKING_CANCELLED"
)

// SSEMessage is the wire shape streamed to schedule viewers.
type SSEMessage struct {
	Type    string     `json:"type"`
	Payload SSEPayload `json:"payload"`
}

type SSEPayload struct {
	SpaceID string                 `json:"spaceId"`
	Date    string                 `json:"date"`
	Booking *bookingEntity.Summary `json:"booking,omitempty"`
}

// DaySlot is one slot in the public day view.
type DaySlot struct {
	Index     int                    `json:"index"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Available bool                   `json:"available"`
	Booking   *bookingEntity.Summary `json:"booking,omitempty"`
}

// DayViewResponse is the public schedule of a space for one calendar day.
type DayViewResponse struct {
	SpaceID   string    `json:"space_id"`
	SpaceName string    `json:"space_name"`
	Date      string    `json:"date"`
	Timezone  string    `json:"timezone"`
	Slots     []DaySlot `json:"slots"`
}
