package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/events"
	"github.com/spec-kit/support-chatbot/internal/observability"
)

const defaultCustomer = "Valued Customer"

// ChatResult is the caller-boundary response: the text to show the
// customer plus classification metadata for observability.
type ChatResult struct {
	Response       string
	Category       domain.Category
	Confidence     float64
	Method         domain.ClassificationMethod
	Handler        string
	TicketID       *string
	ProcessingTime time.Duration
}

// OrchestratorService routes each inbound message through the
// classifier to exactly one handler. No state persists across turns.
type OrchestratorService struct {
	classifier *ClassifierService
	feedback   *FeedbackService
	query      *QueryService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewOrchestratorService constructs the router.
func NewOrchestratorService(classifier *ClassifierService, feedback *FeedbackService, query *QueryService, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *OrchestratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrchestratorService{
		classifier: classifier,
		feedback:   feedback,
		query:      query,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// HandleMessage classifies the message and dispatches to the matching
// handler. The switch over categories is exhaustive; a new category is a
// compile-time visible change here.
func (s *OrchestratorService) HandleMessage(ctx context.Context, message, customer string) (*ChatResult, error) {
	start := time.Now()
	if customer == "" {
		customer = defaultCustomer
	}

	classification := s.classifier.Classify(ctx, message)

	result := &ChatResult{
		Category:   classification.Category,
		Confidence: classification.Confidence,
		Method:     classification.Method,
	}

	var (
		err     error
		success = true
	)
	switch classification.Category {
	case domain.CategoryPositiveFeedback, domain.CategoryNegativeFeedback:
		result.Handler = feedbackHandlerName
		result.Response, result.TicketID, err = s.feedback.HandleFeedback(ctx, classification.Category, message, customer)
	case domain.CategoryStatusQuery:
		result.Handler = queryHandlerName
		result.Response, result.TicketID, success, err = s.query.HandleQuery(ctx, message)
	default:
		err = fmt.Errorf("unknown category %q", classification.Category)
	}
	if err != nil {
		return nil, err
	}

	result.ProcessingTime = time.Since(start)

	s.metrics.RecordClassification(classification.Category, classification.Method, classification.ProcessingTime)
	s.logger.Info("message handled",
		zap.String("category", string(classification.Category)),
		zap.String("method", string(classification.Method)),
		zap.String("handler", result.Handler),
		zap.Bool("success", success),
		zap.Duration("duration", result.ProcessingTime))

	s.publishHandled(ctx, result, customer, success)
	return result, nil
}

func (s *OrchestratorService) publishHandled(ctx context.Context, result *ChatResult, customer string, success bool) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMessageHandled,
		Timestamp: time.Now(),
		Payload: events.MessageHandledPayload{
			Category:   result.Category,
			Method:     result.Method,
			Handler:    result.Handler,
			Customer:   customer,
			Success:    success,
			DurationMS: result.ProcessingTime.Milliseconds(),
		},
	}
	if result.TicketID != nil {
		event.TicketID = *result.TicketID
	}
	_ = s.dispatcher.Publish(ctx, event)
}
