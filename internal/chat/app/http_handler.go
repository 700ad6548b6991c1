package app

import (
	"errors"

	"band_booking_service/internal/chat/domain"
	errprocess "band_booking_service/pkg/err"
	"band_booking_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ChatHTTPHandler wraps the conversation usecase for the HTTP layer. Route
// shapes live in the router; this layer only maps principals in and typed
// errors out.
type ChatHTTPHandler struct {
	convUC *ConversationUseCase
}

// NewChatHTTPHandler create ChatHTTPHandler
func NewChatHTTPHandler(convUC *ConversationUseCase) *ChatHTTPHandler {
	return &ChatHTTPHandler{convUC: convUC}
}

type startConversationRequest struct {
	BandID string `json:"band_id"`
}

// StartConversation POST handler, principal is the user side.
func (h *ChatHTTPHandler) StartConversation(c *fiber.Ctx) error {
	var req startConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	rec, err := h.convUC.StartConversation(c.Context(), principalFromCtx(c), req.BandID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetHistory GET handler for one conversation's view.
func (h *ChatHTTPHandler) GetHistory(c *fiber.Ctx) error {
	view, err := h.convUC.GetHistory(c.Context(), principalFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// ListForUser GET handler for a user's chat list.
func (h *ChatHTTPHandler) ListForUser(c *fiber.Ctx) error {
	summaries, err := h.convUC.ListForUser(c.Context(), principalFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summaries)
}

// ListForBand GET handler for a band's chat list.
func (h *ChatHTTPHandler) ListForBand(c *fiber.Ctx) error {
	summaries, err := h.convUC.ListForBand(c.Context(), principalFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summaries)
}

// DeleteConversation DELETE handler, administrative only.
func (h *ChatHTTPHandler) DeleteConversation(c *fiber.Ctx) error {
	if err := h.convUC.DeleteConversation(c.Context(), principalFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func principalFromCtx(c *fiber.Ctx) domain.Principal {
	id, _ := c.Locals(middlewares.TokenPrincipalID).(string)
	role, _ := c.Locals(middlewares.TokenRole).(string)
	return domain.Principal{ID: id, Role: domain.Role(role)}
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidIDFormat), errors.Is(err, domain.ErrInvalidMessageContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotConversationOwner), errors.Is(err, domain.ErrInvalidMessageActors):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		errprocess.Set("chat http handler: " + err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
