package schedule

import (
	"space-booking-api/core/pubsub"
	bookingRepo "space-booking-api/modules/booking/repository"
	"space-booking-api/modules/schedule/controller"
	"space-booking-api/modules/schedule/router"
	"space-booking-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, bus pubsub.Bus, spaces service.SpaceResolver, bookings bookingRepo.BookingRepositoryInterface) {
	svc := service.NewScheduleService(spaces, bookings)
	ctrl := controller.NewScheduleController(svc, bus)
	router.NewScheduleRouter(ctrl).Setup(e)
}
