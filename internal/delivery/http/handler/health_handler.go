package handler

import (
	"context"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cache *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{
		"database": "ok",
		"cache":    "ok",
	}
	status := fiber.StatusOK

	if h.db == nil {
		checks["database"] = "not configured"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	// Cache is best-effort; an unreachable redis does not degrade the
	// service, so it never flips the health status.
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "unavailable"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "Service unavailable", checks)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}
