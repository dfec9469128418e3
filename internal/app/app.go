package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"school-service/internal/auth"
	"school-service/internal/config"
	"school-service/internal/credential"
	"school-service/internal/db"
	"school-service/internal/health"
	"school-service/internal/kafka"
	"school-service/internal/logger"
	"school-service/internal/messaging"
	"school-service/internal/metrics"
	"school-service/internal/middleware"
	"school-service/internal/provision"
	"school-service/internal/staff"
	"school-service/internal/student"
	"school-service/internal/tenant"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database,
		(*tenant.Tenant)(nil),
		(*student.Student)(nil),
		(*staff.Staff)(nil),
		(*credential.Credential)(nil),
	); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		log.Fatal("failed to initialize metrics:", err)
	}

	app.router.Use(middleware.RequestID)
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Repositories
	tenantRepo := tenant.NewRepository(database, m)
	studentRepo := student.NewRepository(database, m)
	staffRepo := staff.NewRepository(database, m)
	credentialRepo := credential.NewRepository(database, m)

	// Auth setup
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)
	authHandler := auth.NewHandler(tokens, tenantRepo, credentialRepo, slogLogger)
	authHandler.RegisterRoutes(app.router)

	// Event producers (both optional; the pipeline runs without brokers)
	var natsProducer *messaging.Producer
	if cfg.NATS.URL != "" {
		natsProducer, err = messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
			natsProducer = nil
		}
	}
	var kafkaProducer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize kafka producer", "error", err)
			kafkaProducer = nil
		}
	}
	events := &eventPublisher{nats: natsProducer, kafka: kafkaProducer, logger: slogLogger}

	// Provisioning pipeline
	store := provision.NewStore(studentRepo, staffRepo, credentialRepo)
	controller := provision.NewController(store, cfg.Provisioning, m, events, slogLogger)
	provisionHandler := provision.NewHandler(controller, tenantRepo, slogLogger)

	// Read endpoints
	studentHandler := student.NewHandler(student.NewService(studentRepo), slogLogger)
	staffHandler := staff.NewHandler(staff.NewService(staffRepo), slogLogger)

	// Protected routes group for /api endpoints
	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(tokens, slogLogger))
		provisionHandler.RegisterRoutes(r)
		studentHandler.RegisterRoutes(r)
		staffHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	return a.server.Shutdown(ctx)
}
