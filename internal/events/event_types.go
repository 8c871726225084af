package events

import (
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventMessageHandled      EventType = "message_handled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Type     domain.TicketType     `json:"type"`
	Customer string                `json:"customer"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Note      *string             `json:"note,omitempty"`
}

// MessageHandledPayload payload.
type MessageHandledPayload struct {
	Category   domain.Category             `json:"category"`
	Method     domain.ClassificationMethod `json:"method"`
	Handler    string                      `json:"handler"`
	Customer   string                      `json:"customer"`
	Success    bool                        `json:"success"`
	DurationMS int64                       `json:"duration_ms"`
}
