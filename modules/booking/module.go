package booking

import (
	"space-booking-api/core/config"
	"space-booking-api/core/database"
	"space-booking-api/core/lock"
	"space-booking-api/core/middleware"
	"space-booking-api/core/pubsub"
	"space-booking-api/core/queue"
	"space-booking-api/modules/booking/controller"
	"space-booking-api/modules/booking/repository"
	"space-booking-api/modules/booking/router"
	"space-booking-api/modules/booking/service"

	"github.com/labstack/echo/v4"
)

// Init wires the admission pipeline: HTTP submission facade, the queue
// worker, and the cancellation path. The returned repository is shared with
// the schedule module's day view.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	q *queue.Queue,
	locker lock.SpaceLocker,
	bus pubsub.Bus,
	spaces service.SpaceProvider,
	publisher service.SchedulePublisher,
	inbox service.InboxNotifier,
	cfg *config.Config,
	mw *middleware.Middleware,
) *repository.BookingRepository {
	repo := repository.NewBookingRepository(db)
	results := service.NewResultBus(bus)

	worker := service.NewAdmissionWorker(spaces, repo, locker, cfg.Lock.Lease, results, publisher, inbox)
	q.Handle(service.TaskTypeAdmission, worker)

	enqueuer := service.NewAsynqEnqueuer(q, cfg.Queue.Retention())
	admissionSvc := service.NewAdmissionService(spaces, repo, enqueuer, results, locker, cfg.Lock.Lease, publisher)

	ctrl := controller.NewBookingController(admissionSvc)
	router.NewBookingRouter(ctrl).Setup(e, mw)

	return repo
}
