package entity

// ReasonCode is the machine-readable cause of a rejected booking request.
type ReasonCode string

const (
	ReasonInvalidInterval  ReasonCode = "INVALID_INTERVAL"
	ReasonNotSlotAligned   ReasonCode = "NOT_SLOT_ALIGNED"
	ReasonDurationExceeded ReasonCode = "DURATION_EXCEEDED"
	ReasonTooFarInAdvance  ReasonCode = "TOO_FAR_IN_ADVANCE"
	ReasonOutsideOpenHours ReasonCode = "OUTSIDE_OPEN_HOURS"
	ReasonInPast           ReasonCode = "IN_PAST"
	ReasonSlotTaken        ReasonCode = "SLOT_TAKEN"
	ReasonInfraError       ReasonCode = "INFRA_ERROR"
)

type OutcomeStatus string

const (
	OutcomeAccepted OutcomeStatus = "ACCEPTED"
	OutcomeRejected OutcomeStatus = "REJECTED"
)

// Outcome is the terminal result of an admission job, published on the
// result bus for the waiting submitter.
type Outcome struct {
	JobID   string        `json:"jobId"`
	Status  OutcomeStatus `json:"status"`
	Reason  ReasonCode    `json:"reason,omitempty"`
	Booking *Booking      `json:"booking,omitempty"`
}
