package device

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const localsKey = "device_id"

// Store puts the resolved device id into Fiber context locals.
func Store(c *fiber.Ctx, id uuid.UUID) {
	c.Locals(localsKey, id)
}

// FromCtx extracts the device id placed by the device middleware.
func FromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(localsKey).(uuid.UUID)
	return id, ok
}

// Owned returns a GORM scope that filters rows by device ownership.
func Owned(deviceID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("device_id = ?", deviceID)
	}
}
