package domain

import "time"

// Category is the closed set of message classifications. The router
// switches exhaustively over these; adding a category is a compile-time
// visible change.
type Category string

const (
	CategoryPositiveFeedback Category = "positive_feedback"
	CategoryNegativeFeedback Category = "negative_feedback"
	CategoryStatusQuery      Category = "status_query"
)

// Valid reports whether the category is one of the three recognized values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPositiveFeedback, CategoryNegativeFeedback, CategoryStatusQuery:
		return true
	}
	return false
}

// ClassificationMethod records how a classification was produced.
type ClassificationMethod string

const (
	MethodRuleBased ClassificationMethod = "rule_based"
	MethodModel     ClassificationMethod = "llm_based"
	MethodFallback  ClassificationMethod = "fallback"
)

// ClassificationResult is the typed outcome of classifying one message.
// Confidence is informational only; nothing branches on it.
type ClassificationResult struct {
	Category       Category
	Confidence     float64
	Method         ClassificationMethod
	ProcessingTime time.Duration
}
