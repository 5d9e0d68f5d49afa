package notification

import (
	"space-booking-api/core/database"
	"space-booking-api/core/middleware"
	"space-booking-api/modules/notification/controller"
	"space-booking-api/modules/notification/repository"
	"space-booking-api/modules/notification/router"
	"space-booking-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
