package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/repository"
)

const queryHandlerName = "QueryHandler"

// QueryService answers ticket status queries. Store-level failures are
// translated into customer-facing wording; only unexpected errors
// propagate.
type QueryService struct {
	tickets      *TicketService
	interactions repository.InteractionRepository
	logger       *zap.Logger
}

// NewQueryService constructs the service.
func NewQueryService(tickets *TicketService, interactions repository.InteractionRepository, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{tickets: tickets, interactions: interactions, logger: logger}
}

// HandleQuery extracts a ticket identifier from the message and renders
// its current status. The boolean reports whether the lookup succeeded;
// a missing id or unknown ticket still yields a response, never a
// fabricated status.
func (s *QueryService) HandleQuery(ctx context.Context, message string) (string, *string, bool, error) {
	id, ok := domain.ExtractTicketID(message)
	if !ok {
		response := "Please provide a valid ticket number (INC/REQ/CRQ/PBI/RLM + 10 digits)."
		s.recordInteraction(ctx, message, response, nil, false)
		return response, nil, false, nil
	}

	ticket, err := s.tickets.GetTicket(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response := fmt.Sprintf("Ticket %s not found. Please verify the number.", id)
			s.recordInteraction(ctx, message, response, &id, false)
			return response, &id, false, nil
		}
		return "", &id, false, err
	}

	response := statusResponse(ticket)
	s.recordInteraction(ctx, message, response, &id, true)
	return response, &id, true, nil
}

// statusResponse renders per-status wording, quoting the stored status
// verbatim in the generic branch.
func statusResponse(ticket *domain.Ticket) string {
	typeName := ticket.Type.DisplayName()
	switch ticket.Status {
	case domain.TicketStatusOpen:
		return fmt.Sprintf("Your %s %s '%s' has been logged and is awaiting assignment.", typeName, ticket.ID, ticket.Title)
	case domain.TicketStatusInProgress:
		return fmt.Sprintf("Your %s %s '%s' is currently being worked on by our team.", typeName, ticket.ID, ticket.Title)
	case domain.TicketStatusResolved:
		note := "Issue resolved."
		if ticket.ResolutionNote != nil && *ticket.ResolutionNote != "" {
			note = *ticket.ResolutionNote
		}
		return fmt.Sprintf("Your %s %s '%s' has been resolved. %s", typeName, ticket.ID, ticket.Title, note)
	case domain.TicketStatusClosed:
		return fmt.Sprintf("Your %s %s '%s' has been closed.", typeName, ticket.ID, ticket.Title)
	default:
		return fmt.Sprintf("Your %s %s is currently '%s'.", typeName, ticket.ID, ticket.Status)
	}
}

func (s *QueryService) recordInteraction(ctx context.Context, message, response string, ticketID *string, success bool) {
	if s.interactions == nil {
		return
	}
	entry := &domain.Interaction{
		Message:  message,
		Category: domain.CategoryStatusQuery,
		Handler:  queryHandlerName,
		Response: response,
		TicketID: ticketID,
		Success:  success,
	}
	if err := s.interactions.Create(ctx, entry); err != nil {
		s.logger.Warn("interaction log write failed", zap.Error(err))
	}
}
