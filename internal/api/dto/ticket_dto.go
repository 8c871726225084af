package dto

import (
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Prefix      string                `json:"prefix"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Customer    string                `json:"customer"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status         domain.TicketStatus `json:"status"`
	ResolutionNote *string             `json:"resolution_note"`
}

// TicketResponse represents a ticket record.
type TicketResponse struct {
	ID             string                `json:"id"`
	Type           domain.TicketType     `json:"type"`
	TypeName       string                `json:"type_name"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Customer       string                `json:"customer"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	ResolutionNote *string               `json:"resolution_note,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InteractionResponse represents one audit-log entry.
type InteractionResponse struct {
	ID        string          `json:"id"`
	Message   string          `json:"message"`
	Category  domain.Category `json:"category"`
	Handler   string          `json:"handler"`
	Response  string          `json:"response"`
	TicketID  *string         `json:"ticket_id,omitempty"`
	Success   bool            `json:"success"`
	CreatedAt time.Time       `json:"created_at"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
