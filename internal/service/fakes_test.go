package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/repository"
)

// fakeTicketRepository is an in-memory TicketRepository.
type fakeTicketRepository struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	failAll bool
}

func newFakeTicketRepository() *fakeTicketRepository {
	return &fakeTicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (f *fakeTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return fmt.Errorf("insert failed")
	}
	if _, exists := f.tickets[ticket.ID]; exists {
		return fmt.Errorf("duplicate id %s", ticket.ID)
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := ticket
	return &copy, nil
}

func (f *fakeTicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, note *string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ticket.Status = status
	if note != nil {
		ticket.ResolutionNote = note
	}
	ticket.UpdatedAt = time.Now()
	f.tickets[id] = ticket
	copy := ticket
	return &copy, nil
}

func (f *fakeTicketRepository) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.Customer != nil && ticket.Customer != *filter.Customer {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// fakeNumberGenerator issues sequential suffixes per prefix.
type fakeNumberGenerator struct {
	mu   sync.Mutex
	next map[domain.TicketType]int64
}

func newFakeNumberGenerator() *fakeNumberGenerator {
	return &fakeNumberGenerator{next: make(map[domain.TicketType]int64)}
}

func (f *fakeNumberGenerator) Next(ctx context.Context, prefix domain.TicketType) (string, error) {
	if !prefix.Valid() {
		return "", domain.ErrInvalidPrefix
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next[prefix] == 0 {
		f.next[prefix] = 1000000000
	}
	f.next[prefix]++
	return fmt.Sprintf("%s%010d", prefix, f.next[prefix]), nil
}

// fakeInteractionRepository collects audit entries.
type fakeInteractionRepository struct {
	mu      sync.Mutex
	entries []domain.Interaction
}

func (f *fakeInteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	interaction.CreatedAt = time.Now()
	f.entries = append(f.entries, *interaction)
	return nil
}

func (f *fakeInteractionRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Interaction, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

// fakeCompletionClient returns a canned label or error.
type fakeCompletionClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompletionClient) Complete(ctx context.Context, systemMsg, userMsg string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// classifyingCompletionClient labels by keyword so orchestrator tests can
// exercise both feedback branches without a live model.
type classifyingCompletionClient struct {
	calls int
}

func (f *classifyingCompletionClient) Complete(ctx context.Context, systemMsg, userMsg string) (string, error) {
	f.calls++
	if strings.Contains(systemMsg, "thank you response") {
		return "Thank you so much for the kind words!", nil
	}
	lower := strings.ToLower(userMsg)
	if strings.Contains(lower, "thanks") || strings.Contains(lower, "great") {
		return "positive_feedback", nil
	}
	return "negative_feedback", nil
}
