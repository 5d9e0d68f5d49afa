package controller

import (
	"fmt"
	"net/http"

	"space-booking-api/core/controller"
	"space-booking-api/core/errors"
	"space-booking-api/core/logger"
	"space-booking-api/core/pubsub"
	"space-booking-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

type ScheduleController struct {
	service *service.ScheduleService
	bus     pubsub.Bus
	controller.BaseController
}

func NewScheduleController(svc *service.ScheduleService, bus pubsub.Bus) *ScheduleController {
	return &ScheduleController{
		service:        svc,
		bus:            bus,
		BaseController: controller.NewBaseController(),
	}
}

// DayView returns the public slot grid for a space and date
// @Summary Public day schedule
// @Tags Schedule
// @Produce json
// @Param slug path string true "Space slug"
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} controller.SuccessResponse
// @Router /public/schedule/{slug} [get]
func (s *ScheduleController) DayView(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return s.BadRequest(errors.ErrInvalidInput, "date query parameter is required")
	}

	view, appErr := s.service.DayView(c.Request().Context(), c.Param("slug"), date)
	if appErr != nil {
		return s.ErrorResponse(c, appErr)
	}
	return s.SuccessResponse(c, view, "Schedule retrieved")
}

// Stream relays schedule change events for a space as server-sent events
// @Summary Live schedule stream
// @Description Emits SLOT_UPDATE / BOOKING_CREATED / BOOKING_CANCELLED
// @Description events for the space until the client disconnects.
// @Tags Schedule
// @Produce text/event-stream
// @Param slug path string true "Space slug"
// @Router /public/schedule/{slug}/stream [get]
func (s *ScheduleController) Stream(c echo.Context) error {
	space, appErr := s.service.ResolveSpace(c.Request().Context(), c.Param("slug"))
	if appErr != nil {
		return s.ErrorResponse(c, appErr)
	}

	ctx := c.Request().Context()
	events, cancel, err := s.bus.Subscribe(ctx, service.ScheduleTopic(space.ID))
	if err != nil {
		logger.Error("ScheduleController:Stream:Subscribe:Error", "space_id", space.ID, "error", err)
		return s.InternalServerError(errors.ErrInternalServer, "Failed to open stream")
	}
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", msg); err != nil {
				logger.Warn("ScheduleController:Stream:Write:Error", "space_id", space.ID, "error", err)
				return nil
			}
			res.Flush()
		}
	}
}
