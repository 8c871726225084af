package service

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

func newTestOrchestrator(repo *fakeTicketRepository, completions *classifyingCompletionClient, interactions *fakeInteractionRepository) *OrchestratorService {
	tickets := newTestTicketService(repo)
	classifier := NewClassifierService(completions, time.Second, nil)
	feedback := NewFeedbackService(tickets, completions, interactions, time.Second, nil)
	query := NewQueryService(tickets, interactions, nil)
	return NewOrchestratorService(classifier, feedback, query, nil, nil, nil)
}

func TestHandleMessagePositiveFeedback(t *testing.T) {
	repo := newFakeTicketRepository()
	interactions := &fakeInteractionRepository{}
	orchestrator := newTestOrchestrator(repo, &classifyingCompletionClient{}, interactions)

	result, err := orchestrator.HandleMessage(context.Background(), "Thanks for resolving my credit card issue!", "John Smith")
	if err != nil {
		t.Fatal(err)
	}

	if result.Category != domain.CategoryPositiveFeedback {
		t.Fatalf("category = %s, want positive_feedback", result.Category)
	}
	if result.TicketID != nil {
		t.Errorf("positive feedback produced ticket %s, want none", *result.TicketID)
	}
	if _, found := domain.ExtractTicketID(result.Response); found {
		t.Errorf("positive response contains a ticket id: %q", result.Response)
	}
	if len(repo.tickets) != 0 {
		t.Errorf("store mutated on positive feedback: %d tickets", len(repo.tickets))
	}
}

func TestHandleMessageNegativeFeedbackCreatesIncident(t *testing.T) {
	repo := newFakeTicketRepository()
	interactions := &fakeInteractionRepository{}
	orchestrator := newTestOrchestrator(repo, &classifyingCompletionClient{}, interactions)

	result, err := orchestrator.HandleMessage(context.Background(), "My debit card replacement hasn't arrived", "Jane Doe")
	if err != nil {
		t.Fatal(err)
	}

	if result.Category != domain.CategoryNegativeFeedback {
		t.Fatalf("category = %s, want negative_feedback", result.Category)
	}
	if result.TicketID == nil {
		t.Fatal("no ticket id returned for negative feedback")
	}
	if !regexp.MustCompile(`^INC\d{10}$`).MatchString(*result.TicketID) {
		t.Errorf("ticket id %q does not match INC\\d{10}", *result.TicketID)
	}
	if !strings.Contains(result.Response, *result.TicketID) {
		t.Errorf("response %q does not embed ticket id %s", result.Response, *result.TicketID)
	}

	stored, err := repo.GetByID(context.Background(), *result.TicketID)
	if err != nil {
		t.Fatalf("created ticket not in store: %v", err)
	}
	if stored.Status != domain.TicketStatusOpen {
		t.Errorf("created ticket status = %s, want Open", stored.Status)
	}
	if stored.Priority != domain.TicketPriorityHigh {
		t.Errorf("created ticket priority = %s, want High", stored.Priority)
	}
}

func TestHandleMessageStatusQueryResolved(t *testing.T) {
	repo := newFakeTicketRepository()
	tickets := newTestTicketService(repo)
	ctx := context.Background()

	created, err := tickets.CreateTicket(ctx, TicketCreateInput{Prefix: "INC", Title: "Credit Card Blocked", Customer: "John Smith"})
	if err != nil {
		t.Fatal(err)
	}
	note := "Card unblocked after verification"
	if _, err := tickets.UpdateStatus(ctx, created.ID, domain.TicketStatusResolved, &note); err != nil {
		t.Fatal(err)
	}
	before := len(repo.tickets)

	completions := &classifyingCompletionClient{}
	orchestrator := newTestOrchestrator(repo, completions, &fakeInteractionRepository{})

	result, err := orchestrator.HandleMessage(ctx, "What's the status of ticket "+created.ID+"?", "John Smith")
	if err != nil {
		t.Fatal(err)
	}

	if result.Category != domain.CategoryStatusQuery {
		t.Fatalf("category = %s, want status_query", result.Category)
	}
	if result.Method != domain.MethodRuleBased {
		t.Errorf("method = %s, want rule_based", result.Method)
	}
	if completions.calls != 0 {
		t.Errorf("model called %d times for id-bearing query, want 0", completions.calls)
	}
	if !strings.Contains(result.Response, "resolved") {
		t.Errorf("response %q does not state resolved status", result.Response)
	}
	if !strings.Contains(result.Response, note) {
		t.Errorf("response %q does not carry resolution note", result.Response)
	}
	if len(repo.tickets) != before {
		t.Errorf("status query mutated the store")
	}
}

func TestHandleMessageStatusQueryUnknownTicket(t *testing.T) {
	orchestrator := newTestOrchestrator(newFakeTicketRepository(), &classifyingCompletionClient{}, &fakeInteractionRepository{})

	result, err := orchestrator.HandleMessage(context.Background(), "What's the status of ticket INC9999999999?", "Mike Johnson")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Response, "not found") {
		t.Errorf("response %q does not indicate the ticket is missing", result.Response)
	}
}

func TestHandleMessageDefaultsCustomerName(t *testing.T) {
	repo := newFakeTicketRepository()
	orchestrator := newTestOrchestrator(repo, &classifyingCompletionClient{}, &fakeInteractionRepository{})

	result, err := orchestrator.HandleMessage(context.Background(), "My card is broken and nobody helps", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Response, defaultCustomer) {
		t.Errorf("response %q does not address the default customer", result.Response)
	}
}

func TestHandleMessageRecordsInteractions(t *testing.T) {
	interactions := &fakeInteractionRepository{}
	orchestrator := newTestOrchestrator(newFakeTicketRepository(), &classifyingCompletionClient{}, interactions)

	if _, err := orchestrator.HandleMessage(context.Background(), "Thanks, great service!", "John Smith"); err != nil {
		t.Fatal(err)
	}
	if _, err := orchestrator.HandleMessage(context.Background(), "Can you check REQ9876543210?", "Sarah Wilson"); err != nil {
		t.Fatal(err)
	}

	if len(interactions.entries) != 2 {
		t.Fatalf("recorded %d interactions, want 2", len(interactions.entries))
	}
	if interactions.entries[0].Handler != feedbackHandlerName {
		t.Errorf("first interaction handler = %s, want %s", interactions.entries[0].Handler, feedbackHandlerName)
	}
	if interactions.entries[1].Handler != queryHandlerName {
		t.Errorf("second interaction handler = %s, want %s", interactions.entries[1].Handler, queryHandlerName)
	}
	if interactions.entries[1].Success {
		t.Error("query for unknown ticket recorded as success")
	}
}
