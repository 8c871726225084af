package dto

import "github.com/spec-kit/support-chatbot/internal/domain"

// ChatRequest payload.
type ChatRequest struct {
	Message  string `json:"message"`
	Customer string `json:"customer"`
}

// ChatResponse carries the reply plus classification metadata for
// observability.
type ChatResponse struct {
	Response         string                      `json:"response"`
	Category         domain.Category             `json:"category"`
	Confidence       float64                     `json:"confidence"`
	Method           domain.ClassificationMethod `json:"method"`
	Handler          string                      `json:"handler"`
	TicketID         *string                     `json:"ticket_id,omitempty"`
	ProcessingTimeMS int64                       `json:"processing_time_ms"`
}
