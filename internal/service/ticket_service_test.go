package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

func newTestTicketService(repo *fakeTicketRepository) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Numbers:    newFakeNumberGenerator(),
	})
}

func TestCreateTicketIDFormat(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())
	ctx := context.Background()

	for _, prefix := range []string{"INC", "REQ", "CRQ", "PBI", "RLM"} {
		ticket, err := svc.CreateTicket(ctx, TicketCreateInput{
			Prefix:   prefix,
			Title:    "Test",
			Customer: "John Smith",
		})
		if err != nil {
			t.Fatalf("CreateTicket(%s): %v", prefix, err)
		}
		pattern := regexp.MustCompile("^" + prefix + `\d{10}$`)
		if !pattern.MatchString(ticket.ID) {
			t.Errorf("id %q does not match ^%s\\d{10}$", ticket.ID, prefix)
		}
		if ticket.Status != domain.TicketStatusOpen {
			t.Errorf("new ticket status = %s, want Open", ticket.Status)
		}
	}
}

func TestCreateTicketUniqueConsecutiveIDs(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())
	ctx := context.Background()

	first, err := svc.CreateTicket(ctx, TicketCreateInput{Prefix: "INC", Title: "One", Customer: "A"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateTicket(ctx, TicketCreateInput{Prefix: "INC", Title: "Two", Customer: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Errorf("consecutive creates returned the same id %s", first.ID)
	}
}

func TestCreateTicketInvalidPrefix(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{Prefix: "ABC", Title: "Test", Customer: "A"})
	if !errors.Is(err, domain.ErrInvalidPrefix) {
		t.Fatalf("error = %v, want ErrInvalidPrefix", err)
	}
}

func TestCreateTicketDefaultsPriority(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{Prefix: "REQ", Title: "Test", Customer: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("priority = %s, want Medium default", ticket.Priority)
	}
}

func TestGetTicketRoundTrip(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())
	ctx := context.Background()

	created, err := svc.CreateTicket(ctx, TicketCreateInput{
		Prefix:      "INC",
		Title:       "Credit Card Blocked",
		Description: "Card blocked after suspicious activity",
		Customer:    "John Smith",
		Priority:    domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatal(err)
	}

	fetched, err := svc.GetTicket(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Title != "Credit Card Blocked" || fetched.Description != "Card blocked after suspicious activity" {
		t.Errorf("fetched ticket fields do not match input: %+v", fetched)
	}
	if fetched.Customer != "John Smith" || fetched.Priority != domain.TicketPriorityHigh {
		t.Errorf("fetched customer/priority do not match input: %+v", fetched)
	}
	if fetched.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s, want Open", fetched.Status)
	}

	again, err := svc.GetTicket(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *again != *fetched {
		t.Errorf("repeated get returned a different record: %+v vs %+v", again, fetched)
	}
}

func TestGetTicketNotFound(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())

	_, err := svc.GetTicket(context.Background(), "INC9999999999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusWithNote(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())
	ctx := context.Background()

	created, err := svc.CreateTicket(ctx, TicketCreateInput{Prefix: "INC", Title: "Test", Customer: "A"})
	if err != nil {
		t.Fatal(err)
	}

	note := "Card unblocked after verification"
	updated, err := svc.UpdateStatus(ctx, created.ID, domain.TicketStatusResolved, &note)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Errorf("status = %s, want Resolved", updated.Status)
	}
	if updated.ResolutionNote == nil || *updated.ResolutionNote != note {
		t.Errorf("resolution note = %v, want %q", updated.ResolutionNote, note)
	}

	fetched, err := svc.GetTicket(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Status != domain.TicketStatusResolved {
		t.Errorf("fetched status = %s, want Resolved", fetched.Status)
	}
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())

	_, err := svc.UpdateStatus(context.Background(), "INC9999999999", domain.TicketStatusResolved, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())

	_, err := svc.UpdateStatus(context.Background(), "INC1000000001", domain.TicketStatus("Escalated"), nil)
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateStatusAnyDirectionAllowed(t *testing.T) {
	svc := newTestTicketService(newFakeTicketRepository())
	ctx := context.Background()

	created, err := svc.CreateTicket(ctx, TicketCreateInput{Prefix: "INC", Title: "Test", Customer: "A"})
	if err != nil {
		t.Fatal(err)
	}

	// Open straight to Closed, then back to Open; neither is rejected.
	if _, err := svc.UpdateStatus(ctx, created.ID, domain.TicketStatusClosed, nil); err != nil {
		t.Fatalf("Open -> Closed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, domain.TicketStatusOpen, nil); err != nil {
		t.Fatalf("Closed -> Open: %v", err)
	}
}

func TestListTicketsFilters(t *testing.T) {
	repo := newFakeTicketRepository()
	svc := newTestTicketService(repo)
	ctx := context.Background()

	for _, input := range []TicketCreateInput{
		{Prefix: "INC", Title: "One", Customer: "Alice"},
		{Prefix: "REQ", Title: "Two", Customer: "Bob"},
		{Prefix: "INC", Title: "Three", Customer: "Alice"},
	} {
		if _, err := svc.CreateTicket(ctx, input); err != nil {
			t.Fatal(err)
		}
	}

	customer := "Alice"
	tickets, err := svc.ListTickets(ctx, TicketListFilter{Customer: &customer})
	if err != nil {
		t.Fatal(err)
	}
	if len(tickets) != 2 {
		t.Errorf("listed %d tickets for Alice, want 2", len(tickets))
	}

	_, err = svc.ListTickets(ctx, TicketListFilter{Statuses: []domain.TicketStatus{"Bogus"}})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus for bogus filter status", err)
	}
}
