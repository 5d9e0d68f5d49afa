package service

import (
	"context"
	"time"

	"space-booking-api/core/errors"
	"space-booking-api/core/logger"
	bookingRepo "space-booking-api/modules/booking/repository"
	"space-booking-api/modules/schedule/dto"
	spaceEntity "space-booking-api/modules/space/entity"

	"github.com/google/uuid"
)

// SpaceResolver is the slice of the space module the schedule view needs.
type SpaceResolver interface {
	GetSpaceBySlug(ctx context.Context, slug string) (*spaceEntity.Space, error)
	GetRules(ctx context.Context, spaceID uuid.UUID) (*spaceEntity.BookingRules, error)
}

type ScheduleService struct {
	spaces   SpaceResolver
	bookings bookingRepo.BookingRepositoryInterface
}

func NewScheduleService(spaces SpaceResolver, bookings bookingRepo.BookingRepositoryInterface) *ScheduleService {
	return &ScheduleService{spaces: spaces, bookings: bookings}
}

// ResolveSpace maps a public slug to its space, for the SSE stream handler.
func (s *ScheduleService) ResolveSpace(ctx context.Context, slug string) (*spaceEntity.Space, *errors.AppError) {
	space, err := s.spaces.GetSpaceBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load space", nil)
	}
	if space == nil || !space.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "Space not found", nil)
	}
	return space, nil
}

// DayView renders the slot grid of a space for one calendar day, marking
// slots covered by a confirmed booking.
func (s *ScheduleService) DayView(ctx context.Context, slug string, date string) (*dto.DayViewResponse, *errors.AppError) {
	space, appErr := s.ResolveSpace(ctx, slug)
	if appErr != nil {
		return nil, appErr
	}

	loc := space.Location()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", nil)
	}

	rules, err := s.spaces.GetRules(ctx, space.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load rules", nil)
	}
	if rules == nil {
		rules = spaceEntity.DefaultRules(space.ID)
	}

	open, closeAt, err := rules.OpenCloseOn(day, loc)
	if err != nil {
		logger.Error("ScheduleService:DayView:OpenHours:Error", "space_id", space.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Space has malformed open hours", nil)
	}

	booked, err := s.bookings.ListConfirmedForDay(ctx, space.ID, open.UTC(), closeAt.UTC())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load bookings", nil)
	}

	slotDuration := time.Duration(rules.SlotDurationMinutes) * time.Minute
	slots := []dto.DaySlot{}
	index := 0
	for current := open; current.Add(slotDuration).Before(closeAt) || current.Add(slotDuration).Equal(closeAt); current = current.Add(slotDuration) {
		slot := dto.DaySlot{
			Index:     index,
			StartTime: current.UTC(),
			EndTime:   current.Add(slotDuration).UTC(),
			Available: true,
		}
		for i := range booked {
			if booked[i].StartTime.Before(slot.EndTime) && booked[i].EndTime.After(slot.StartTime) {
				summary := booked[i].Summary()
				slot.Available = false
				slot.Booking = &summary
				break
			}
		}
		slots = append(slots, slot)
		index++
	}

	return &dto.DayViewResponse{
		SpaceID:   space.ID.String(),
		SpaceName: space.Name,
		Date:      date,
		Timezone:  space.Timezone,
		Slots:     slots,
	}, nil
}
