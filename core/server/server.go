package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"space-booking-api/core/cache"
	"space-booking-api/core/config"
	"space-booking-api/core/database"
	"space-booking-api/core/lock"
	"space-booking-api/core/logger"
	"space-booking-api/core/middleware"
	"space-booking-api/core/pubsub"
	"space-booking-api/core/queue"
	"space-booking-api/modules/booking"
	"space-booking-api/modules/notification"
	"space-booking-api/modules/schedule"
	"space-booking-api/modules/space"
	scheduleService "space-booking-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// Run builds every client handle explicitly, wires the modules, and blocks
// until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Info("Server:Start", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	defer redisClient.Close()

	c := cache.NewRedisCache(redisClient)
	locker := lock.NewRedisLocker(redisClient, cfg.Lock.AcquireTimeout, cfg.Lock.RetryInterval)
	bus := pubsub.NewRedisBus(redisClient)
	q := queue.New(cfg.Redis, cfg.Queue)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	mw := middleware.NewMiddleware(cfg.Auth.JWTSecret)

	publisher := scheduleService.NewPublisher(bus)

	spaceSvc := space.Init(e, db, c, cfg, mw)
	notifSvc := notification.Init(e, db, mw)
	bookingRepo := booking.Init(e, db, q, locker, bus, spaceSvc, publisher, notifSvc, cfg, mw)
	schedule.Init(e, bus, spaceSvc, bookingRepo)

	if err := q.Start(); err != nil {
		return fmt.Errorf("start queue: %w", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:HTTP:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Shutdown:Start")

	q.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Shutdown:HTTP:Error", "error", err)
	}

	logger.Info("Server:Shutdown:Done")
	return nil
}
