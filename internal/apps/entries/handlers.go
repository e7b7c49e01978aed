package entries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

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

func (h *Handler) Create(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	resp, err := h.service.Create(c.UserContext(), deviceID, req)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": resp})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	entry, err := h.service.Get(c.UserContext(), entryID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"data": entry})
}

func (h *Handler) ListMine(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	page, limit := pagination(c)
	list, total, err := h.service.ListMine(c.UserContext(), deviceID, page, limit)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"entries": list,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	if err := h.service.Delete(c.UserContext(), deviceID, entryID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "고백이 삭제되었습니다."})
}

func (h *Handler) MarkViewed(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	if err := h.service.MarkViewed(c.UserContext(), deviceID, entryID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) React(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	var req ReactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	if err := h.service.React(c.UserContext(), deviceID, entryID, req.Kind); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) Report(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	var req ReportRequest
	_ = c.BodyParser(&req)

	if err := h.service.Report(c.UserContext(), deviceID, entryID, req.Reason); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- comments ---

func (h *Handler) AddComment(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "요청 형식이 올바르지 않습니다.")
	}

	comment, err := h.service.AddComment(c.UserContext(), deviceID, entryID, req)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": comment})
}

func (h *Handler) ListComments(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "고백 ID가 올바르지 않습니다.")
	}

	threads, err := h.service.ListComments(c.UserContext(), entryID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"comments": threads}})
}

func (h *Handler) DeleteComment(c *fiber.Ctx) error {
	deviceID, ok := device.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "댓글 ID가 올바르지 않습니다.")
	}

	if err := h.service.DeleteComment(c.UserContext(), deviceID, commentID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- discovery ---

func (h *Handler) Trending(c *fiber.Ctx) error {
	page, limit := pagination(c)
	list, total, err := h.service.Trending(c.UserContext(), page, limit)
	if err != nil {
		return renderError(c, err)
	}
	return paginated(c, list, page, limit, total)
}

func (h *Handler) Popular(c *fiber.Ctx) error {
	page, limit := pagination(c)
	list, total, err := h.service.Popular(c.UserContext(), page, limit)
	if err != nil {
		return renderError(c, err)
	}
	return paginated(c, list, page, limit, total)
}

func (h *Handler) SearchByTag(c *fiber.Ctx) error {
	tag := c.Params("tag")
	if tag == "" {
		return badRequest(c, "태그를 입력해주세요.")
	}

	page, limit := pagination(c)
	list, total, err := h.service.SearchByTag(c.UserContext(), tag, page, limit)
	if err != nil {
		return renderError(c, err)
	}
	return paginated(c, list, page, limit, total)
}

// --- helpers ---

func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

func paginated(c *fiber.Ctx, list []Entry, page, limit int, total int64) error {
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"entries": list,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func renderError(c *fiber.Ctx, err error) error {
	ae, _ := apperr.As(apperr.Translate(err))
	return c.Status(ae.HTTPStatus()).JSON(dto.ErrorResponse{Error: true, Message: ae.Message})
}
