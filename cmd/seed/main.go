// Command seed inserts demo tickets so the chat flow can be exercised
// against known identifiers.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chatbot/internal/config"
	"github.com/spec-kit/support-chatbot/internal/domain"
	"github.com/spec-kit/support-chatbot/internal/observability"
	"github.com/spec-kit/support-chatbot/internal/persistence"
	"github.com/spec-kit/support-chatbot/internal/repository"
	"github.com/spec-kit/support-chatbot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(pool),
		Numbers:    repository.NewTicketNumberRepository(pool),
		Logger:     logger,
	})

	samples := []service.TicketCreateInput{
		{Prefix: "INC", Title: "Credit Card Blocked", Description: "Card blocked after suspicious activity", Customer: "John Smith", Priority: domain.TicketPriorityHigh},
		{Prefix: "REQ", Title: "New Debit Card", Description: "Request new debit card", Customer: "Jane Doe", Priority: domain.TicketPriorityMedium},
		{Prefix: "PBI", Title: "ATM Network Down", Description: "Multiple ATM failures", Customer: "System", Priority: domain.TicketPriorityCritical},
		{Prefix: "CRQ", Title: "System Upgrade", Description: "Core banking upgrade", Customer: "IT Team", Priority: domain.TicketPriorityHigh},
		{Prefix: "RLM", Title: "Mobile App v2.1", Description: "New mobile app release", Customer: "Dev Team", Priority: domain.TicketPriorityMedium},
	}

	var firstIncident string
	for _, sample := range samples {
		ticket, err := tickets.CreateTicket(ctx, sample)
		if err != nil {
			logger.Fatal("failed to seed ticket", zap.String("title", sample.Title), zap.Error(err))
		}
		logger.Info("seeded ticket", zap.String("ticket_id", ticket.ID), zap.String("title", ticket.Title))
		if ticket.Type == domain.TicketTypeIncident && firstIncident == "" {
			firstIncident = ticket.ID
		}
	}

	if firstIncident != "" {
		note := "Card unblocked after verification"
		if _, err := tickets.UpdateStatus(ctx, firstIncident, domain.TicketStatusResolved, &note); err != nil {
			logger.Fatal("failed to resolve seeded incident", zap.Error(err))
		}
		logger.Info("resolved seeded incident", zap.String("ticket_id", firstIncident))
	}
}
