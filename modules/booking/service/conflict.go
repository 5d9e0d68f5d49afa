package service

import (
	"context"
	"time"

	"space-booking-api/modules/booking/entity"
	"space-booking-api/modules/booking/repository"

	"github.com/google/uuid"
)

// ConflictChecker reads the confirmed schedule of a space to decide whether
// a candidate interval is free. Callers must hold the space lock, otherwise
// the read can be stale relative to a concurrent commit.
type ConflictChecker struct {
	repo repository.BookingRepositoryInterface
}

func NewConflictChecker(repo repository.BookingRepositoryInterface) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// FindConflicts returns the confirmed bookings whose buffered interval
// intersects [start, end). For admin overrides pass bufferMinutes=0: the
// policy buffer is waived but a direct time overlap never is.
func (c *ConflictChecker) FindConflicts(ctx context.Context, spaceID uuid.UUID, start, end time.Time, bufferMinutes int) ([]entity.Summary, error) {
	buffer := time.Duration(bufferMinutes) * time.Minute
	conflicts, err := c.repo.FindConfirmedOverlapping(ctx, spaceID, start.Add(-buffer), end.Add(buffer))
	if err != nil {
		return nil, err
	}

	summaries := make([]entity.Summary, 0, len(conflicts))
	for i := range conflicts {
		summaries = append(summaries, conflicts[i].Summary())
	}
	return summaries, nil
}
