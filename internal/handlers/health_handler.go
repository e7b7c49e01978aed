package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dongkyukim1/confession-backend/internal/cache"
	"github.com/dongkyukim1/confession-backend/internal/database"
	"github.com/dongkyukim1/confession-backend/internal/dto"
)

type HealthHandler struct {
	kv cache.KV
}

func NewHealthHandler(kv cache.KV) *HealthHandler {
	return &HealthHandler{kv: kv}
}

// Health reports liveness plus the state of both backing stores. A
// dead database degrades the status; a dead cache does not, because
// everything that uses it fails open.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "up",
		Cache:     "up",
	}

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
	}

	if _, err := h.kv.Get(c.UserContext(), "health:probe"); err != nil && err != cache.ErrNotFound {
		resp.Cache = "down"
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
