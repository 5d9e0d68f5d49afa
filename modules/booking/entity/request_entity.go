package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the admission job payload. It is immutable once
// enqueued; the worker operates on a copy with normalized times. The JSON
// field names are the queue wire contract.
type BookingRequest struct {
	SpaceID      uuid.UUID    `json:"spaceId"`
	UserID       uuid.UUID    `json:"userId"`
	UserName     string       `json:"userName"`
	StartTime    time.Time    `json:"startTime"`
	EndTime      time.Time    `json:"endTime"`
	Participants Participants `json:"participants"`
	Notes        *string      `json:"notes,omitempty"`
	SlotIndex    *int         `json:"slotIndex,omitempty"`
	SlotID       *string      `json:"slotId,omitempty"`
	OrgID        uuid.UUID    `json:"orgId"`
	IsAdmin      bool         `json:"isAdmin,omitempty"`
}

// IdempotencyKey derives a deterministic key for the commit so re-delivery
// of the same job can never create a second booking.
func (r *BookingRequest) IdempotencyKey() string {
	slotID := ""
	if r.SlotID != nil {
		slotID = *r.SlotID
	}
	raw := fmt.Sprintf("%s|%s|%d|%d|%s",
		r.SpaceID, r.UserID, r.StartTime.UTC().Unix(), r.EndTime.UTC().Unix(), slotID)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// AdmissionJob wraps a request with its queue-level identity.
type AdmissionJob struct {
	ID      string         `json:"id"`
	Request BookingRequest `json:"request"`
}
