package service

import (
	"context"

	"space-booking-api/core/logger"
	"space-booking-api/core/pubsub"
	bookingEntity "space-booking-api/modules/booking/entity"
	"space-booking-api/modules/schedule/dto"
	spaceEntity "space-booking-api/modules/space/entity"

	"github.com/google/uuid"
)

const scheduleTopicPrefix = "schedule:events:"

func ScheduleTopic(spaceID uuid.UUID) string {
	return scheduleTopicPrefix + spaceID.String()
}

// Publisher broadcasts compact change events for a space's schedule.
// Fire-and-forget: a failed publish is logged and never propagated, so the
// admission commit that triggered it is unaffected.
type Publisher struct {
	bus pubsub.Bus
}

func NewPublisher(bus pubsub.Bus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) publish(ctx context.Context, eventType string, space *spaceEntity.Space, booking *bookingEntity.Booking) {
	date := booking.StartTime.In(space.Location()).Format("2006-01-02")
	summary := booking.Summary()

	msg := dto.SSEMessage{
		Type: eventType,
		Payload: dto.SSEPayload{
			SpaceID: space.ID.String(),
			Date:    date,
			Booking: &summary,
		},
	}
	if err := p.bus.Publish(ctx, ScheduleTopic(space.ID), msg); err != nil {
		logger.Warn("SchedulePublisher:Publish:Error", "type", eventType, "space_id", space.ID, "error", err)
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, space *spaceEntity.Space, booking *bookingEntity.Booking) {
	p.publish(ctx, dto.EventBookingCreated, space, booking)
}

func (p *Publisher) BookingCancelled(ctx context.Context, space *spaceEntity.Space, booking *bookingEntity.Booking) {
	p.publish(ctx, dto.EventBookingCancelled, space, booking)
}

// SlotUpdate signals a coarse change for a space/date without a specific
// booking, e.g. after a rules update reshapes the grid.
func (p *Publisher) SlotUpdate(ctx context.Context, spaceID uuid.UUID, date string) {
	msg := dto.SSEMessage{
		Type:    dto.EventSlotUpdate,
		Payload: dto.SSEPayload{SpaceID: spaceID.String(), Date: date},
	}
	if err := p.bus.Publish(ctx, ScheduleTopic(spaceID), msg); err != nil {
		logger.Warn("SchedulePublisher:SlotUpdate:Error", "space_id", spaceID, "error", err)
	}
}
