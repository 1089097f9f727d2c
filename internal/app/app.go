package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/auth"
	"github.com/RubachokBoss/tutoring-center/internal/config"
	"github.com/RubachokBoss/tutoring-center/internal/database"
	"github.com/RubachokBoss/tutoring-center/internal/delivery/httpd"
	"github.com/RubachokBoss/tutoring-center/internal/middleware"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
	"github.com/RubachokBoss/tutoring-center/internal/repository/memory"
	"github.com/RubachokBoss/tutoring-center/internal/service"
	"github.com/RubachokBoss/tutoring-center/internal/service/integration"
	"github.com/RubachokBoss/tutoring-center/internal/service/storage"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	publisher integration.EventPublisher
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	repos, db, err := openRepositories(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	publisher := newPublisher(cfg.RabbitMQ, log)

	var attachments service.AttachmentService
	if cfg.Storage.Enabled {
		store, err := storage.NewMinIOStorage(ctx, storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			// uploads answer 503 until storage is reachable on the next start
			log.Error().Err(err).Msg("Failed to initialize object storage, attachments disabled")
		} else {
			attachments = service.NewAttachmentService(store, log)
		}
	}

	services := service.New(repos, publisher, service.SystemClock, log)

	handler, err := httpd.NewHandler(services, httpd.Options{
		Attachments:   attachments,
		Health:        repos.Health,
		Resolver:      auth.NewResolver(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Now:           service.SystemClock,
		MaxUploadSize: cfg.Server.MaxUploadSize,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.NewCORS(cfg.CORS))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		publisher: publisher,
	}, nil
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*repository.Set, *sql.DB, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return memory.NewSet(), nil, nil
	}

	db, err := database.NewPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}

	repos := repository.NewPostgresSet(db, log)
	if err := repos.Health.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Database connection established")
	return repos, db, nil
}

// newPublisher falls back to dropping events when the broker is disabled or unreachable.
func newPublisher(cfg config.RabbitMQConfig, log zerolog.Logger) integration.EventPublisher {
	if !cfg.Enabled {
		return integration.NewNopPublisher(log)
	}

	publisher, err := integration.NewRabbitMQPublisher(integration.RabbitMQConfig{
		URL:        cfg.URL,
		Exchange:   cfg.Exchange,
		QueueName:  cfg.QueueName,
		BindingKey: cfg.BindingKey,
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ publisher, events will be dropped")
		return integration.NewNopPublisher(log)
	}
	return publisher
}

// Handler exposes the routed handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting tutoring center on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down tutoring center...")

	err := a.server.Shutdown(ctx)

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close event publisher")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return err
}
