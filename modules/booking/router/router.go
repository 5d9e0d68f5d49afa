package router

import (
	"space-booking-api/core/middleware"
	"space-booking-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	priv := v1.Group("/private", mw.AuthMiddleware())

	bookings := priv.Group("/bookings")
	bookings.POST("", r.Controller.SubmitBooking)
	bookings.GET("", r.Controller.ListMyBookings)
	bookings.GET("/:id", r.Controller.GetBooking)
	bookings.DELETE("/:id", r.Controller.CancelBooking)
}
