package drafts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/dto"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type saveDraftRequest struct {
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Images  []string `json:"images,omitempty"`
}

func (h *Handler) Get(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	d, err := h.store.Load(c.UserContext(), deviceID)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "임시저장을 불러오지 못했습니다.",
		})
	}
	if d == nil {
		return c.JSON(fiber.Map{"data": nil})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"content":  d.Content,
		"mood":     d.Mood,
		"tags":     d.Tags,
		"images":   d.Images,
		"saved_at": d.SavedAt,
		"age":      h.store.FormatAge(d),
	}})
}

func (h *Handler) Put(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req saveDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "요청 형식이 올바르지 않습니다.",
		})
	}

	if err := h.store.Save(c.UserContext(), deviceID, req.Content, req.Mood, req.Tags, req.Images); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "임시저장에 실패했습니다.",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if err := h.store.Clear(c.UserContext(), deviceID); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "임시저장 삭제에 실패했습니다.",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
