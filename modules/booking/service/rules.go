package service

import (
	"fmt"
	"time"

	"space-booking-api/modules/booking/entity"
	spaceEntity "space-booking-api/modules/space/entity"
)

// RuleViolation is a terminal, client-caused rejection from rule evaluation.
type RuleViolation struct {
	Reason  entity.ReasonCode
	Message string
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Reason, v.Message)
}

func violation(reason entity.ReasonCode, format string, args ...any) *RuleViolation {
	return &RuleViolation{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// EvaluateRules validates a booking request against the space's policy and
// returns a normalized copy (times in UTC) or the first violation found.
// Pure: no I/O, no shared state; now is injected for determinism.
//
// An admin override skips every policy check but never well-formedness; a
// degenerate interval is not allowed to enter the schedule regardless of who
// asks.
func EvaluateRules(req *entity.BookingRequest, space *spaceEntity.Space, rules *spaceEntity.BookingRules, now time.Time) (*entity.BookingRequest, *RuleViolation) {
	normalized := *req
	normalized.StartTime = req.StartTime.UTC()
	normalized.EndTime = req.EndTime.UTC()

	if !normalized.StartTime.Before(normalized.EndTime) {
		return nil, violation(entity.ReasonInvalidInterval, "start %s is not before end %s", normalized.StartTime, normalized.EndTime)
	}

	if req.IsAdmin {
		return &normalized, nil
	}

	duration := normalized.EndTime.Sub(normalized.StartTime)
	slotDuration := time.Duration(rules.SlotDurationMinutes) * time.Minute

	loc := space.Location()
	open, closeAt, err := rules.OpenCloseOn(normalized.StartTime, loc)
	if err != nil {
		return nil, violation(entity.ReasonInvalidInterval, "space has malformed open hours: %v", err)
	}

	if req.SlotIndex != nil {
		// Fixed-slot resource: the interval must be exactly the referenced slot.
		slotStart := open.Add(time.Duration(*req.SlotIndex) * slotDuration)
		if !normalized.StartTime.Equal(slotStart.UTC()) || duration != slotDuration {
			return nil, violation(entity.ReasonNotSlotAligned, "interval does not match slot %d", *req.SlotIndex)
		}
	} else if slotDuration <= 0 || duration%slotDuration != 0 {
		return nil, violation(entity.ReasonNotSlotAligned, "duration %s is not a multiple of the %d-minute slot", duration, rules.SlotDurationMinutes)
	}

	if duration > time.Duration(rules.MaxDurationMinutes)*time.Minute {
		return nil, violation(entity.ReasonDurationExceeded, "duration %s exceeds the %d-minute maximum", duration, rules.MaxDurationMinutes)
	}

	if normalized.StartTime.Before(now) {
		return nil, violation(entity.ReasonInPast, "start %s is in the past", normalized.StartTime)
	}
	horizon := now.Add(time.Duration(rules.MaxAdvanceDays) * 24 * time.Hour)
	if normalized.StartTime.After(horizon) {
		return nil, violation(entity.ReasonTooFarInAdvance, "start %s is beyond the %d-day horizon", normalized.StartTime, rules.MaxAdvanceDays)
	}

	if normalized.StartTime.Before(open.UTC()) || normalized.EndTime.After(closeAt.UTC()) {
		return nil, violation(entity.ReasonOutsideOpenHours, "interval is outside open hours %s-%s", rules.OpenTime, rules.CloseTime)
	}

	return &normalized, nil
}
