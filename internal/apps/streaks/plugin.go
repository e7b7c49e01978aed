package streaks

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
)

type StreaksPlugin struct {
	service *Service
}

func New(service *Service) *StreaksPlugin {
	return &StreaksPlugin{service: service}
}

func (p *StreaksPlugin) ID() string { return "streaks" }

func (p *StreaksPlugin) Models() []interface{} {
	return []interface{}{&StreakState{}}
}

func (p *StreaksPlugin) RegisterRoutes(router fiber.Router, _ *gorm.DB, _ *config.Config) {
	h := NewHandler(p.service)

	router.Get("/streaks/me", h.Get)
	router.Post("/streaks/me/recompute", h.Recompute)
}
