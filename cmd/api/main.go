package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-chatbot/internal/api/http"
	"github.com/spec-kit/support-chatbot/internal/api/http/handlers"
	"github.com/spec-kit/support-chatbot/internal/auth"
	"github.com/spec-kit/support-chatbot/internal/config"
	"github.com/spec-kit/support-chatbot/internal/events"
	"github.com/spec-kit/support-chatbot/internal/llm"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	numberRepo := repository.NewTicketNumberRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)
	ticketCache := repository.NewTicketCache(redis.Client, cfg.Redis.TicketTTL())

	completions := llm.NewClient(cfg.Classifier)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Numbers:    numberRepo,
		Cache:      ticketCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	classifierService := service.NewClassifierService(completions, cfg.Classifier.Timeout(), logger)
	feedbackService := service.NewFeedbackService(ticketService, completions, interactionRepo, cfg.Classifier.Timeout(), logger)
	queryService := service.NewQueryService(ticketService, interactionRepo, logger)
	orchestrator := service.NewOrchestratorService(classifierService, feedbackService, queryService, dispatcher, metrics, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	operatorHash, err := auth.HashPassword(cfg.Auth.OperatorPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash operator password", zap.Error(err))
	}
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Chat:           handlers.NewChatHandler(orchestrator),
		Tickets:        handlers.NewTicketsHandler(ticketService, interactionRepo),
		Auth:           handlers.NewAuthHandler(tokenManager, cfg.Auth.OperatorUsername, operatorHash),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
