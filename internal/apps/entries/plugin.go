package entries

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
	"github.com/dongkyukim1/confession-backend/internal/middleware"
	"github.com/dongkyukim1/confession-backend/internal/ratelimit"
)

type EntriesPlugin struct {
	service *Service
	limiter *ratelimit.Limiter
}

func New(service *Service, limiter *ratelimit.Limiter) *EntriesPlugin {
	return &EntriesPlugin{service: service, limiter: limiter}
}

func (p *EntriesPlugin) ID() string { return "entries" }

func (p *EntriesPlugin) Models() []interface{} {
	return []interface{}{&Entry{}, &EntryView{}, &EntryReaction{}, &EntryReport{}, &Comment{}}
}

func (p *EntriesPlugin) RegisterRoutes(router fiber.Router, _ *gorm.DB, cfg *config.Config) {
	h := NewHandler(p.service)

	writeLimit := middleware.DeviceRateLimit(p.limiter, "entry_write", cfg.WriteLimitMax, cfg.WriteLimitWindow)
	readLimit := middleware.DeviceRateLimit(p.limiter, "entry_read", cfg.ReadLimitMax, cfg.ReadLimitWindow)
	commentLimit := middleware.DeviceRateLimit(p.limiter, "comment_write", cfg.CommentLimitMax, cfg.CommentLimitWindow)

	router.Post("/entries", writeLimit, h.Create)
	router.Get("/entries/my/list", h.ListMine)
	router.Get("/entries/:id", h.Get)
	router.Delete("/entries/:id", h.Delete)
	router.Post("/entries/:id/view", readLimit, h.MarkViewed)
	router.Post("/entries/:id/react", h.React)
	router.Post("/entries/:id/report", h.Report)

	router.Post("/entries/:id/comments", commentLimit, h.AddComment)
	router.Get("/entries/:id/comments", h.ListComments)
	router.Delete("/comments/:id", h.DeleteComment)

	router.Get("/discovery/trending", h.Trending)
	router.Get("/discovery/popular", h.Popular)
	router.Get("/discovery/tags/:tag", h.SearchByTag)
}
