package router

import (
	"space-booking-api/core/middleware"
	"space-booking-api/modules/space/controller"

	"github.com/labstack/echo/v4"
)

type SpaceRouter struct {
	Controller *controller.SpaceController
}

func NewSpaceRouter(ctrl *controller.SpaceController) *SpaceRouter {
	return &SpaceRouter{Controller: ctrl}
}

func (r *SpaceRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	priv := v1.Group("/private", mw.AuthMiddleware())

	spaces := priv.Group("/spaces")
	spaces.GET("", r.Controller.ListSpaces)
	spaces.GET("/:id", r.Controller.GetSpace)

	// Mutations are reserved for organization administrators.
	spaces.POST("", r.Controller.CreateSpace, mw.AdminOnly())
	spaces.PUT("/:id/rules", r.Controller.UpdateRules, mw.AdminOnly())
}
