package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/llm"
)

const classifySystemPrompt = `Classify as: positive_feedback, negative_feedback, or query
Respond with only the classification.`

// ClassifierService maps a customer message to one of the three
// categories. Messages carrying a ticket identifier are classified by
// rule without a model call; everything else goes to the injected
// completion client with a bounded timeout.
type ClassifierService struct {
	completions llm.CompletionClient
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClassifierService constructs the classifier.
func NewClassifierService(completions llm.CompletionClient, timeout time.Duration, logger *zap.Logger) *ClassifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassifierService{completions: completions, timeout: timeout, logger: logger}
}

// Classify returns a classification for the message. A failed or
// unparseable model call never surfaces to the caller: the message is
// routed as a status query when it carries a ticket-id pattern and as
// negative feedback otherwise, so no customer message is dropped.
func (s *ClassifierService) Classify(ctx context.Context, message string) domain.ClassificationResult {
	start := time.Now()

	if _, ok := domain.ExtractTicketID(message); ok {
		return domain.ClassificationResult{
			Category:       domain.CategoryStatusQuery,
			Confidence:     0.95,
			Method:         domain.MethodRuleBased,
			ProcessingTime: time.Since(start),
		}
	}

	category, err := s.classifyWithModel(ctx, message)
	if err != nil {
		s.logger.Warn("classification unavailable, applying fallback routing", zap.Error(err))
		return domain.ClassificationResult{
			Category:       domain.CategoryNegativeFeedback,
			Confidence:     0,
			Method:         domain.MethodFallback,
			ProcessingTime: time.Since(start),
		}
	}

	return domain.ClassificationResult{
		Category:       category,
		Confidence:     0.8,
		Method:         domain.MethodModel,
		ProcessingTime: time.Since(start),
	}
}

func (s *ClassifierService) classifyWithModel(ctx context.Context, message string) (domain.Category, error) {
	callCtx, cancel := llm.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.completions.Complete(callCtx, classifySystemPrompt, fmt.Sprintf("Message: '%s'", message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, err)
	}

	category, ok := parseCategoryLabel(raw)
	if !ok {
		return "", fmt.Errorf("%w: unparseable label %q", domain.ErrClassificationUnavailable, raw)
	}
	return category, nil
}

// parseCategoryLabel tolerates surrounding punctuation and the short
// "query" label the prompt asks for.
func parseCategoryLabel(raw string) (domain.Category, bool) {
	label := strings.ToLower(strings.Trim(strings.TrimSpace(raw), `."'`))
	switch label {
	case "positive_feedback":
		return domain.CategoryPositiveFeedback, true
	case "negative_feedback":
		return domain.CategoryNegativeFeedback, true
	case "query", "status_query":
		return domain.CategoryStatusQuery, true
	}
	return "", false
}
