package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/diagnosis-service/internal/api/http"
	"github.com/spec-kit/diagnosis-service/internal/api/http/handlers"
	"github.com/spec-kit/diagnosis-service/internal/auth"
	"github.com/spec-kit/diagnosis-service/internal/config"
	"github.com/spec-kit/diagnosis-service/internal/diagnosis"
	"github.com/spec-kit/diagnosis-service/internal/events"
	"github.com/spec-kit/diagnosis-service/internal/observability"
	"github.com/spec-kit/diagnosis-service/internal/persistence"
	"github.com/spec-kit/diagnosis-service/internal/repository"
	"github.com/spec-kit/diagnosis-service/internal/service"
	"github.com/spec-kit/diagnosis-service/internal/worker"
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

	pool := pg.PoolHandle()

	var (
		userRepo   repository.UserRepository
		reportRepo repository.ReportRepository
	)
	if pool != nil {
		userRepo = repository.NewUserRepository(pool)
		reportRepo = repository.NewReportRepository(pool)
	} else {
		logger.Warn("using in-memory stores")
		userRepo = repository.NewMemoryUserRepository()
		reportRepo = repository.NewMemoryReportRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg, userRepo, dispatcher, logger)
	reportService := service.NewReportService(reportRepo, dispatcher)
	diagnosisService := service.NewDiagnosisService(service.DiagnosisDependencies{
		Predictor:  diagnosis.NewSymptomPredictor(),
		Analyzer:   diagnosis.NewMockImageAnalyzer(),
		Chatbot:    diagnosis.NewKeywordChatbot(),
		Cache:      redis,
		CacheTTL:   cfg.Chat.CacheTTL(),
		Dispatcher: dispatcher,
	}, logger)

	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		logger.Fatal("failed to ensure default admin", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		Diagnosis:      handlers.NewDiagnosisHandler(diagnosisService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
