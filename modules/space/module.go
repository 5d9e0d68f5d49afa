package space

import (
	"space-booking-api/core/cache"
	"space-booking-api/core/config"
	"space-booking-api/core/database"
	"space-booking-api/core/middleware"
	"space-booking-api/modules/space/controller"
	"space-booking-api/modules/space/repository"
	"space-booking-api/modules/space/router"
	"space-booking-api/modules/space/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, cfg *config.Config, mw *middleware.Middleware) *service.SpaceService {
	repo := repository.NewSpaceRepository(db)
	svc := service.NewSpaceService(repo, c, cfg.Booking.RulesCacheTTL)
	ctrl := controller.NewSpaceController(svc)
	router.NewSpaceRouter(ctrl).Setup(e, mw)
	return svc
}
