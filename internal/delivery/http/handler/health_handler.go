package handler

import (
	"context"
	"time"

	"itapp/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is implemented by the database pool and the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health reports the database as required and the cache as informational,
// since searches bypass a missing cache.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "up", "cache": "disabled"}
	code := fiber.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "down"
			code = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		status["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
	}

	if code != fiber.StatusOK {
		return response.Error(c, code, "service unavailable", status)
	}
	return response.Success(c, code, response.MessageOK, status)
}
