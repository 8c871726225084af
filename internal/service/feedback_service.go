package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/llm"
	"github.com/spec-kit/support-chatbot/internal/repository"
)

const feedbackHandlerName = "FeedbackHandler"

// FeedbackService acknowledges positive feedback and opens an incident
// for negative feedback.
type FeedbackService struct {
	tickets      *TicketService
	completions  llm.CompletionClient
	interactions repository.InteractionRepository
	timeout      time.Duration
	logger       *zap.Logger
}

// NewFeedbackService constructs the service.
func NewFeedbackService(tickets *TicketService, completions llm.CompletionClient, interactions repository.InteractionRepository, timeout time.Duration, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		tickets:      tickets,
		completions:  completions,
		interactions: interactions,
		timeout:      timeout,
		logger:       logger,
	}
}

// HandleFeedback routes a classified feedback message. For negative
// feedback either a ticket is created and its id appears in the
// response, or the call fails with no partial ticket.
func (s *FeedbackService) HandleFeedback(ctx context.Context, category domain.Category, message, customer string) (string, *string, error) {
	switch category {
	case domain.CategoryPositiveFeedback:
		response := s.positiveResponse(ctx, message, customer)
		s.recordInteraction(ctx, message, category, response, nil, true)
		return response, nil, nil
	case domain.CategoryNegativeFeedback:
		return s.handleNegative(ctx, message, customer)
	default:
		return "", nil, fmt.Errorf("unsupported feedback category %q", category)
	}
}

// positiveResponse asks the model for a warm thank-you and falls back to
// a fixed template so a model outage never drops the acknowledgement.
func (s *FeedbackService) positiveResponse(ctx context.Context, message, customer string) string {
	systemMsg := fmt.Sprintf(`Create a warm thank you response for positive banking feedback.
Customer name: %s
Keep under 80 words.`, customer)

	callCtx, cancel := llm.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.completions.Complete(callCtx, systemMsg, fmt.Sprintf("Feedback: '%s'", message))
	if err != nil || response == "" {
		if err != nil {
			s.logger.Warn("thank-you generation failed, using template", zap.Error(err))
		}
		return fmt.Sprintf("Thank you for your kind feedback, %s! We are delighted to hear your issue was resolved and appreciate you taking the time to let us know.", customer)
	}
	return response
}

func (s *FeedbackService) handleNegative(ctx context.Context, message, customer string) (string, *string, error) {
	ticket, err := s.tickets.CreateTicket(ctx, TicketCreateInput{
		Prefix:      string(domain.TicketTypeIncident),
		Title:       "Customer Complaint",
		Description: message,
		Customer:    customer,
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		s.logger.Error("incident creation failed for negative feedback", zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", domain.ErrTicketCreationFailed, err)
	}

	response := fmt.Sprintf("We sincerely apologize for the inconvenience, %s. A new incident %s has been created and our team will address this issue promptly.", customer, ticket.ID)
	s.recordInteraction(ctx, message, domain.CategoryNegativeFeedback, response, &ticket.ID, true)
	return response, &ticket.ID, nil
}

// recordInteraction appends to the audit log; a logging failure must not
// fail the customer response.
func (s *FeedbackService) recordInteraction(ctx context.Context, message string, category domain.Category, response string, ticketID *string, success bool) {
	if s.interactions == nil {
		return
	}
	entry := &domain.Interaction{
		Message:  message,
		Category: category,
		Handler:  feedbackHandlerName,
		Response: response,
		TicketID: ticketID,
		Success:  success,
	}
	if err := s.interactions.Create(ctx, entry); err != nil {
		s.logger.Warn("interaction log write failed", zap.Error(err))
	}
}
