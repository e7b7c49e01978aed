package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dongkyukim1/confession-backend/internal/config"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/dto"
	"github.com/dongkyukim1/confession-backend/internal/models"
)

type DeviceHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewDeviceHandler(db *gorm.DB, cfg *config.Config) *DeviceHandler {
	return &DeviceHandler{db: db, cfg: cfg}
}

// Register enrolls an install. The client may bring its own UUID-v4
// (generated on first launch); otherwise the server mints one.
// Re-registering an existing id refreshes last_seen and re-issues the
// token, so a reinstalled app keeps its history.
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterDeviceRequest
	_ = c.BodyParser(&req)

	var id uuid.UUID
	if req.DeviceID != "" {
		parsed, ok := device.ValidateID(req.DeviceID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "기기 ID 형식이 올바르지 않습니다.",
			})
		}
		id = parsed
	} else {
		id = device.NewID()
	}

	now := time.Now()
	row := models.Device{
		ID:         id,
		Platform:   req.Platform,
		AppVersion: req.AppVersion,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	err := h.db.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "app_version", "last_seen_at"}),
	}).Create(&row).Error
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "기기 등록에 실패했습니다. 잠시 후 다시 시도해주세요.",
		})
	}

	token, err := device.IssueToken(id, h.cfg.TokenSecret, h.cfg.TokenExpiry)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "토큰 발급에 실패했습니다.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterDeviceResponse{
		DeviceID: id.String(),
		Token:    token,
	})
}
