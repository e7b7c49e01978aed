package achievements

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
)

type AchievementsPlugin struct {
	service *Service
}

func New(service *Service) *AchievementsPlugin {
	return &AchievementsPlugin{service: service}
}

func (p *AchievementsPlugin) ID() string { return "achievements" }

func (p *AchievementsPlugin) Models() []interface{} {
	return []interface{}{
		&Achievement{},
		&DeviceAchievement{},
	}
}

func (p *AchievementsPlugin) RegisterRoutes(router fiber.Router, _ *gorm.DB, _ *config.Config) {
	h := NewHandler(p.service)

	router.Get("/achievements", h.List)
	router.Post("/achievements/:id/viewed", h.MarkViewed)
}
