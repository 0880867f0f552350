package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyerin/tinywords/internal/api"
	"github.com/hyerin/tinywords/internal/config"
	"github.com/hyerin/tinywords/internal/db"
	"github.com/hyerin/tinywords/internal/logger"
	"github.com/hyerin/tinywords/internal/repository/sqlite"
	"github.com/hyerin/tinywords/internal/services"
	"github.com/hyerin/tinywords/internal/words"
	"github.com/hyerin/tinywords/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("TinyWords Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("openai_model=%s", cfg.OpenAIModel)
	log.Debug("event_worker_count=%d", cfg.EventWorkerCount)
	log.Debug("event_queue_size=%d", cfg.EventQueueSize)
	log.Debug("idempotency_ttl_hours=%d", cfg.IdempotencyTTLHours)
	log.Debug("default_timezone=%s", cfg.DefaultTimezone)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	profileRepo := sqlite.NewProfileRepository(database)
	itemRepo := sqlite.NewLearningItemRepository(database)
	planRepo := sqlite.NewPlanRepository(database)
	reviewRepo := sqlite.NewReviewRepository(database)
	streakRepo := sqlite.NewStreakRepository(database)
	speechRepo := sqlite.NewSpeechRepository(database)
	sentenceRepo := sqlite.NewSentenceRepository(database)
	eventRepo := sqlite.NewEventRepository(database)
	idemRepo := sqlite.NewIdempotencyRepository(database)

	// Background event recording
	eventPool := worker.NewPool(cfg.EventWorkerCount, cfg.EventQueueSize)
	recorder := worker.NewEventRecorder(eventPool, eventRepo)

	// Word generation
	supplier := words.NewOpenAISupplier(cfg.OpenAIAPIKey, cfg.OpenAIModel,
		time.Duration(cfg.WordGenTimeoutSec)*time.Second)

	idemTTL := time.Duration(cfg.IdempotencyTTLHours) * time.Hour

	// Services
	planService := services.NewPlanService(planRepo, itemRepo, reviewRepo, streakRepo,
		sentenceRepo, profileRepo, idemRepo, supplier, recorder, idemTTL)
	reviewService := services.NewReviewService(reviewRepo, itemRepo, idemRepo, recorder, idemTTL)
	profileService := services.NewProfileService(profileRepo, recorder)
	historyService := services.NewHistoryService(planRepo, reviewRepo, streakRepo,
		sentenceRepo, speechRepo, recorder)
	speechService := services.NewSpeechService(speechRepo)

	srv := &api.Server{
		DB:             database,
		PlanService:    planService,
		ReviewService:  reviewService,
		ProfileService: profileService,
		HistoryService: historyService,
		SpeechService:  speechService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	eventPool.Start(ctx)
	worker.StartPurger(ctx, eventPool, idemRepo, time.Hour)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping event pool")
	cancel()
	eventPool.Stop()

	log.Info("===========================================")
	log.Info("TinyWords Server Stopped")
	log.Info("===========================================")
}
