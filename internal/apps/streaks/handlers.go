package streaks

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/dto"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	resp, err := h.service.Get(deviceID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *Handler) Recompute(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	resp, err := h.service.Recompute(c.UserContext(), deviceID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"data": resp})
}

func renderError(c *fiber.Ctx, err error) error {
	ae, _ := apperr.As(apperr.Translate(err))
	return c.Status(ae.HTTPStatus()).JSON(dto.ErrorResponse{Error: true, Message: ae.Message})
}
