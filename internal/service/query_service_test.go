package service

import (
	"context"
	"strings"
	"testing"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

func TestHandleQueryNoTicketID(t *testing.T) {
	interactions := &fakeInteractionRepository{}
	query := NewQueryService(newTestTicketService(newFakeTicketRepository()), interactions, nil)

	response, ticketID, ok, err := query.HandleQuery(context.Background(), "where is my ticket?")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("query without an id reported success")
	}
	if ticketID != nil {
		t.Errorf("ticket id = %v, want nil", *ticketID)
	}
	if !strings.Contains(response, "INC/REQ/CRQ/PBI/RLM") {
		t.Errorf("response %q does not ask for a valid ticket number", response)
	}
}

func TestStatusResponseWording(t *testing.T) {
	note := "Card unblocked after verification"
	tests := []struct {
		name   string
		ticket domain.Ticket
		want   string
	}{
		{
			name:   "open",
			ticket: domain.Ticket{ID: "INC1000000001", Type: domain.TicketTypeIncident, Title: "Card Blocked", Status: domain.TicketStatusOpen},
			want:   "awaiting assignment",
		},
		{
			name:   "in progress",
			ticket: domain.Ticket{ID: "REQ1000000001", Type: domain.TicketTypeServiceRequest, Title: "New Card", Status: domain.TicketStatusInProgress},
			want:   "being worked on",
		},
		{
			name:   "resolved with note",
			ticket: domain.Ticket{ID: "INC1000000002", Type: domain.TicketTypeIncident, Title: "Card Blocked", Status: domain.TicketStatusResolved, ResolutionNote: &note},
			want:   note,
		},
		{
			name:   "closed",
			ticket: domain.Ticket{ID: "CRQ1000000001", Type: domain.TicketTypeChangeRequest, Title: "Upgrade", Status: domain.TicketStatusClosed},
			want:   "has been closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusResponse(&tt.ticket)
			if !strings.Contains(got, tt.want) {
				t.Errorf("statusResponse = %q, want it to contain %q", got, tt.want)
			}
			if !strings.Contains(got, tt.ticket.ID) {
				t.Errorf("statusResponse = %q, missing ticket id %s", got, tt.ticket.ID)
			}
			if !strings.Contains(got, tt.ticket.Type.DisplayName()) {
				t.Errorf("statusResponse = %q, missing type name %s", got, tt.ticket.Type.DisplayName())
			}
		})
	}
}
