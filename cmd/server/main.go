package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/cache"
	"github.com/SAP-F-2025/comprehension-service/internal/config"
	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/events"
	"github.com/SAP-F-2025/comprehension-service/internal/experiment"
	"github.com/SAP-F-2025/comprehension-service/internal/export"
	"github.com/SAP-F-2025/comprehension-service/internal/handlers"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/SAP-F-2025/comprehension-service/internal/utils"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"github.com/SAP-F-2025/comprehension-service/pkg"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "comprehension-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(os.Stdout, cfg.IsProduction())
	slogger := logger.Slog()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(db)

	// Stimuli
	v := validator.New()
	items, err := content.LoadFile(cfg.StimuliPath)
	if err != nil {
		return err
	}
	catalog, err := content.NewCatalog(items, v)
	if err != nil {
		return err
	}
	logger.Info("Loaded stimuli", "path", cfg.StimuliPath, "items", catalog.Len(), "item_ids", catalog.IDs())

	words := experiment.DefaultWordList
	if cfg.WordList != "" {
		if words, err = experiment.LoadWordList(cfg.WordList); err != nil {
			return err
		}
	}
	keys, err := experiment.NewWordKeys(words)
	if err != nil {
		return err
	}

	// Progress cache
	cacheService := cache.NewNoopCache()
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	switch {
	case err != nil:
		logger.Warn("Redis unavailable, progress snapshots disabled", "error", err)
	case redisClient != nil:
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(slogger)
	}
	defer publisher.Close()

	if channel, ok := publisher.(*events.ChannelEventPublisher); ok {
		messages, err := channel.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to events: %w", err)
		}
		go logEvents(messages, slogger)
	}

	// Services
	exporter := export.Multi(
		export.NewJSONBackup(cfg.ResultsDir),
		export.NewRecordExporter(repo, slogger),
		export.NewEventExporter(publisher),
	)

	sessionService := services.NewSessionService(
		repo,
		catalog,
		exporter,
		cacheService,
		services.NewSessionEventService(publisher, slogger),
		slogger,
		v,
		services.SessionConfig{
			Study:       cfg.Study,
			ProgressTTL: cfg.ProgressTTL,
			Keys:        keys,
		},
	)
	participantService := services.NewParticipantService(repo, slogger, v)
	exportService := services.NewExportService(repo, cfg.Study, slogger, v)

	authenticator := handlers.NewCasdoorAuthenticator(cfg.Casdoor)
	if authenticator == nil {
		logger.Warn("CASDOOR_ENDPOINT not set, data download disabled")
	}

	// HTTP
	hm := handlers.NewHandlerManager(sessionService, participantService, exportService, authenticator, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(hm, logger, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// logEvents drains the in-process event channel when no broker is configured.
func logEvents(messages <-chan *message.Message, logger *slog.Logger) {
	for msg := range messages {
		logger.Info("Event",
			"event_id", msg.UUID,
			"event_type", msg.Metadata.Get("event_type"),
			"payload", string(msg.Payload))
		msg.Ack()
	}
}
