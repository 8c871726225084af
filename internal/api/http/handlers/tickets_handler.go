package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chatbot/internal/api/dto"
	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/repository"
	"github.com/spec-kit/support-chatbot/internal/service"
	apperrors "github.com/spec-kit/support-chatbot/pkg/util"
)

// TicketsHandler manages the administrative ticket endpoints.
type TicketsHandler struct {
	tickets      *service.TicketService
	interactions repository.InteractionRepository
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, interactions repository.InteractionRepository) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, interactions: interactions}
}

// CreateTicket POST /admin/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Prefix == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Customer) == "" {
		return apperrors.NewValidationError("prefix, title, customer required", nil)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return apperrors.NewValidationError("priority must be one of Low, Medium, High, Critical", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Prefix:      req.Prefix,
		Title:       req.Title,
		Description: req.Description,
		Customer:    req.Customer,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// GetTicket GET /admin/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, req.ResolutionNote)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /admin/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketListQuery(c)
	tickets, err := h.tickets.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListInteractions GET /admin/interactions.
func (h *TicketsHandler) ListInteractions(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	entries, err := h.interactions.ListRecent(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.InteractionResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.InteractionResponse{
			ID:        entry.ID,
			Message:   entry.Message,
			Category:  entry.Category,
			Handler:   entry.Handler,
			Response:  entry.Response,
			TicketID:  entry.TicketID,
			Success:   entry.Success,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketListQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if customer := strings.TrimSpace(c.Query("customer")); customer != "" {
		filter.Customer = &customer
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:             ticket.ID,
		Type:           ticket.Type,
		TypeName:       ticket.Type.DisplayName(),
		Title:          ticket.Title,
		Description:    ticket.Description,
		Customer:       ticket.Customer,
		Priority:       ticket.Priority,
		Status:         ticket.Status,
		ResolutionNote: ticket.ResolutionNote,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
	}
}
