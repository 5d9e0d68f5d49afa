package dto

import (
	"time"

	"space-booking-api/modules/booking/entity"

	"github.com/google/uuid"
)

// SubmitBookingRequest is the HTTP body for a booking submission.
type SubmitBookingRequest struct {
	SpaceID      uuid.UUID            `json:"space_id"`
	StartTime    time.Time            `json:"start_time"`
	EndTime      time.Time            `json:"end_time"`
	Participants []entity.Participant `json:"participants"`
	Notes        *string              `json:"notes,omitempty"`
	SlotIndex    *int                 `json:"slot_index,omitempty"`
	SlotID       *string              `json:"slot_id,omitempty"`
}

type SubmitStatus string

const (
	SubmitAccepted SubmitStatus = "ACCEPTED"
	SubmitRejected SubmitStatus = "REJECTED"
	SubmitTimedOut SubmitStatus = "TIMED_OUT"
)

// SubmitBookingResult is what the submitter gets back: a decision, or
// TIMED_OUT when the decision did not arrive in time. A timed-out job keeps
// running; its outcome is observable via the schedule stream.
type SubmitBookingResult struct {
	Status  SubmitStatus      `json:"status"`
	JobID   string            `json:"job_id"`
	Reason  entity.ReasonCode `json:"reason,omitempty"`
	Booking *entity.Booking   `json:"booking,omitempty"`
}
