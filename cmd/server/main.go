package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbruna/mindvault/internal/api"
	"github.com/mbruna/mindvault/internal/config"
	"github.com/mbruna/mindvault/internal/db"
	"github.com/mbruna/mindvault/internal/evaluator"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/repository/sqlite"
	"github.com/mbruna/mindvault/internal/services"
	"github.com/mbruna/mindvault/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MindVault Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("eval_model=%s", cfg.EvalModel)
	log.Debug("graph_worker_count=%d", cfg.GraphWorkerCount)
	log.Debug("graph_queue_size=%d", cfg.GraphQueueSize)
	log.Debug("review_batch_size=%d", cfg.ReviewBatchSize)
	log.Debug("practice_batch_size=%d", cfg.PracticeBatchSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	noteRepo := sqlite.NewNoteRepository(database.DB)
	graphRepo := sqlite.NewGraphRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	exerciseRepo := sqlite.NewExerciseRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	graphPool := worker.NewPool(cfg.GraphWorkerCount, cfg.GraphQueueSize)

	graphService := services.NewGraphService(noteRepo, graphRepo)
	noteService := services.NewNoteService(noteRepo, services.NewPoolReindexer(graphPool, graphService))
	cardService := services.NewCardService(cardRepo, noteRepo)
	exerciseService := services.NewExerciseService(exerciseRepo, noteRepo)
	reviewService := services.NewReviewService(cardRepo, cfg.ReviewBatchSize)
	statsService := services.NewStatsService(statsRepo)

	var eval evaluator.Evaluator
	if cfg.OpenAIAPIKey != "" {
		log.Info("grading practice answers with model %s", cfg.EvalModel)
		eval = evaluator.NewOpenAI(evaluator.Config{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.EvalModel,
		})
	} else {
		log.Warn("OPENAI_API_KEY not set, grading practice answers heuristically")
		eval = evaluator.NewHeuristic()
	}
	practiceService := services.NewPracticeService(exerciseRepo, eval, cfg.PracticeBatchSize)

	srv := &api.Server{
		DB:              database,
		NoteService:     noteService,
		GraphService:    graphService,
		CardService:     cardService,
		ExerciseService: exerciseService,
		ReviewService:   reviewService,
		PracticeService: practiceService,
		StatsService:    statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	graphPool.Start(ctx)

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

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	graphPool.Stop()

	log.Info("===========================================")
	log.Info("MindVault Server Stopped")
	log.Info("===========================================")
}
