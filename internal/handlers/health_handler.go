package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	driver string
}

func NewHealthHandler(db *gorm.DB, driver string) *HealthHandler {
	return &HealthHandler{db: db, driver: driver}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Driver:    h.driver,
	}
	if err := database.Ping(ctx, h.db); err != nil {
		status = fiber.StatusServiceUnavailable
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}

	return c.Status(status).JSON(resp)
}
