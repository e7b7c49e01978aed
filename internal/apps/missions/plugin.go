package missions

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
)

type MissionsPlugin struct {
	service *Service
}

func New(service *Service) *MissionsPlugin {
	return &MissionsPlugin{service: service}
}

func (p *MissionsPlugin) ID() string { return "missions" }

func (p *MissionsPlugin) Models() []interface{} {
	return []interface{}{&MissionInstance{}}
}

func (p *MissionsPlugin) RegisterRoutes(router fiber.Router, _ *gorm.DB, _ *config.Config) {
	h := NewHandler(p.service)

	router.Get("/missions/today", h.Today)
}
