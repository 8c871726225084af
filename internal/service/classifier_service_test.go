package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

func TestClassifyTicketIDShortCircuit(t *testing.T) {
	completions := &fakeCompletionClient{response: "positive_feedback"}
	classifier := NewClassifierService(completions, time.Second, nil)

	result := classifier.Classify(context.Background(), "What's the status of INC1234567890?")

	if result.Category != domain.CategoryStatusQuery {
		t.Fatalf("category = %s, want status_query", result.Category)
	}
	if result.Method != domain.MethodRuleBased {
		t.Errorf("method = %s, want rule_based", result.Method)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", result.Confidence)
	}
	if completions.calls != 0 {
		t.Errorf("model called %d times for rule-based message, want 0", completions.calls)
	}
}

func TestClassifyModelLabels(t *testing.T) {
	tests := []struct {
		label string
		want  domain.Category
	}{
		{"positive_feedback", domain.CategoryPositiveFeedback},
		{"negative_feedback", domain.CategoryNegativeFeedback},
		{"query", domain.CategoryStatusQuery},
		{"  Negative_Feedback.\n", domain.CategoryNegativeFeedback},
	}

	for _, tt := range tests {
		completions := &fakeCompletionClient{response: tt.label}
		classifier := NewClassifierService(completions, time.Second, nil)

		result := classifier.Classify(context.Background(), "My card is not working")
		if result.Category != tt.want {
			t.Errorf("label %q: category = %s, want %s", tt.label, result.Category, tt.want)
		}
		if result.Method != domain.MethodModel {
			t.Errorf("label %q: method = %s, want llm_based", tt.label, result.Method)
		}
	}
}

func TestClassifyFallbackOnModelError(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("connection refused")}
	classifier := NewClassifierService(completions, time.Second, nil)

	result := classifier.Classify(context.Background(), "My debit card replacement hasn't arrived")

	if result.Category != domain.CategoryNegativeFeedback {
		t.Fatalf("category = %s, want negative_feedback fallback", result.Category)
	}
	if result.Method != domain.MethodFallback {
		t.Errorf("method = %s, want fallback", result.Method)
	}
}

func TestClassifyFallbackOnUnparseableLabel(t *testing.T) {
	completions := &fakeCompletionClient{response: "I think this customer is upset"}
	classifier := NewClassifierService(completions, time.Second, nil)

	result := classifier.Classify(context.Background(), "My card is not working")

	if result.Category != domain.CategoryNegativeFeedback {
		t.Fatalf("category = %s, want negative_feedback fallback", result.Category)
	}
	if result.Method != domain.MethodFallback {
		t.Errorf("method = %s, want fallback", result.Method)
	}
}
