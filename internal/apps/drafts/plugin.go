package drafts

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
)

type DraftsPlugin struct {
	store *Store
}

func New(store *Store) *DraftsPlugin {
	return &DraftsPlugin{store: store}
}

func (p *DraftsPlugin) ID() string { return "drafts" }

// Models returns nil; drafts live in the KV layer, not Postgres.
func (p *DraftsPlugin) Models() []interface{} { return nil }

func (p *DraftsPlugin) RegisterRoutes(router fiber.Router, _ *gorm.DB, _ *config.Config) {
	h := NewHandler(p.store)

	router.Get("/drafts/me", h.Get)
	router.Put("/drafts/me", h.Put)
	router.Delete("/drafts/me", h.Delete)
}
