package main

import (
	"space-booking-api/core/logger"
	"space-booking-api/core/server"
)

// @title Space Booking API
// @version 1.0
// @description Multi-tenant space reservation service with a concurrency-safe booking admission pipeline.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
