package router

import (
	"space-booking-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	Controller *controller.ScheduleController
}

func NewScheduleRouter(ctrl *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{Controller: ctrl}
}

func (r *ScheduleRouter) Setup(e *echo.Echo) {
	pub := e.Group("/api/v1/public/schedule")
	pub.GET("/:slug", r.Controller.DayView)
	pub.GET("/:slug/stream", r.Controller.Stream)
}
