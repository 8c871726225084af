package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/events"
	"github.com/spec-kit/support-chatbot/internal/repository"
)

// TicketService owns the ticket lifecycle: creation with generated
// identifiers, point lookups, status updates and listing.
type TicketService struct {
	tickets    repository.TicketRepository
	numbers    repository.TicketNumberGenerator
	cache      *repository.TicketCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Numbers    repository.TicketNumberGenerator
	Cache      *repository.TicketCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Prefix      string
	Title       string
	Description string
	Customer    string
	Priority    domain.TicketPriority
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses []domain.TicketStatus
	Customer *string
	Limit    int
	Offset   int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		numbers:    deps.Numbers,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket validates input, generates the next identifier for the
// prefix and inserts the ticket with status Open. The insert is durable
// before return.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticketType, err := domain.ParseTicketType(input.Prefix)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("title required")
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, errors.New("unrecognized priority")
	}

	id, err := s.numbers.Next(ctx, ticketType)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ID:          id,
		Type:        ticketType,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Customer:    strings.TrimSpace(input.Customer),
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer", ticket.Customer),
		zap.String("priority", string(ticket.Priority)))

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Type:     ticket.Type,
			Customer: ticket.Customer,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by its full identifier, consulting the
// cache first.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	id = strings.ToUpper(strings.TrimSpace(id))

	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("ticket cache read failed", zap.String("ticket_id", id), zap.Error(err))
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, ticket); err != nil {
		s.logger.Warn("ticket cache write failed", zap.String("ticket_id", id), zap.Error(err))
	}
	return ticket, nil
}

// UpdateStatus moves a ticket to a new status, recording the resolution
// note when provided. Any move between the recognized statuses is
// allowed.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, newStatus domain.TicketStatus, note *string) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	id = strings.ToUpper(strings.TrimSpace(id))

	existing, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := existing.Status

	ticket, err := s.tickets.UpdateStatus(ctx, id, newStatus, note)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("ticket cache invalidation failed", zap.String("ticket_id", id), zap.Error(err))
	}

	s.logger.Info("ticket status updated",
		zap.String("ticket_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)))

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Note:      note,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets ordered by creation time descending.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	for _, status := range filter.Statuses {
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: filter.Statuses,
		Customer: filter.Customer,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
