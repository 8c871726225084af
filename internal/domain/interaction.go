package domain

import "time"

// Interaction is one handled customer message, recorded append-only for
// the support audit trail.
type Interaction struct {
	ID        string
	Message   string
	Category  Category
	Handler   string
	Response  string
	TicketID  *string
	Success   bool
	CreatedAt time.Time
}
