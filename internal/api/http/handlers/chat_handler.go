package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chatbot/internal/api/dto"
	"github.com/spec-kit/support-chatbot/internal/service"
	apperrors "github.com/spec-kit/support-chatbot/pkg/util"
)

// ChatHandler exposes the caller boundary: one endpoint that routes a
// customer message through the classifier and handlers.
type ChatHandler struct {
	orchestrator *service.OrchestratorService
}

// NewChatHandler constructs handler.
func NewChatHandler(orchestrator *service.OrchestratorService) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// HandleMessage POST /chat.
func (h *ChatHandler) HandleMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	result, err := h.orchestrator.HandleMessage(c.UserContext(), req.Message, strings.TrimSpace(req.Customer))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.ChatResponse{
		Response:         result.Response,
		Category:         result.Category,
		Confidence:       result.Confidence,
		Method:           result.Method,
		Handler:          result.Handler,
		TicketID:         result.TicketID,
		ProcessingTimeMS: result.ProcessingTime.Milliseconds(),
	}})
}
