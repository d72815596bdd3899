package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ruang-foto/internal/domain"
	"ruang-foto/internal/middleware"
	"ruang-foto/internal/service"
)

type ReactionHandler struct {
	reactionService service.ReactionService
}

func NewReactionHandler(reactionService service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

type toggleRequest struct {
	UserName string `json:"user_name"`
}

func (h *ReactionHandler) ToggleLike(c *fiber.Ctx) error {
	return h.toggle(c, domain.ReactionLike)
}

func (h *ReactionHandler) ToggleDislike(c *fiber.Ctx) error {
	return h.toggle(c, domain.ReactionDislike)
}

func (h *ReactionHandler) toggle(c *fiber.Ctx, kind domain.ReactionKind) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.reactionService.Toggle(c.Context(), kind, photoID, req.UserName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ReactionHandler) Status(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	userName := c.Query("user_name")
	if userName == "" {
		return middleware.BadRequest("user_name is required")
	}

	status, err := h.reactionService.Status(c.Context(), photoID, userName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *ReactionHandler) Counts(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	counts, err := h.reactionService.Counts(c.Context(), photoID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(counts)
}
