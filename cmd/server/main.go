package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/catalog"
	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/database"
	"github.com/hiresift/hiresift-backend/internal/decision"
	"github.com/hiresift/hiresift-backend/internal/fraud"
	"github.com/hiresift/hiresift-backend/internal/handler"
	"github.com/hiresift/hiresift-backend/internal/judge"
	"github.com/hiresift/hiresift-backend/internal/logger"
	"github.com/hiresift/hiresift-backend/internal/repository"
	"github.com/hiresift/hiresift-backend/internal/router"
	"github.com/hiresift/hiresift-backend/internal/service"
	"github.com/hiresift/hiresift-backend/internal/validator"
	"github.com/hiresift/hiresift-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting HireSift Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Load Question Catalogs ────────────────────────────────────────
	cat, err := catalog.Load(cfg.QuestionCatalogPath, cfg.ReferenceCatalogPath, cfg.HRCatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load question catalogs")
	}
	log.Info().Int("questions", len(cat.Questions())).Msg("Catalogs loaded")

	// ─── Initialize Evaluation Core ────────────────────────────────────
	executor := judge.NewExecutor(cfg.PythonBin, cfg.JudgeTimeout, log)
	grader := judge.NewGrader(executor, cfg.JudgeWorkers, log)

	fraudPipeline := fraud.NewPipeline(
		fraud.NewPlagiarismDetector(cat),
		fraud.NewTimingDetector(fraud.DefaultTimingConfig()),
		fraud.NewAuthenticityChecker(fraud.DefaultAuthenticityConfig()),
		log,
	)

	engine := decision.NewEngine(decision.Weights{
		Resume:          cfg.WeightResume,
		Coding:          cfg.WeightCoding,
		Fraud:           cfg.WeightFraud,
		ScreeningResume: cfg.WeightScreeningResume,
		ScreeningFraud:  cfg.WeightScreeningFraud,
	}, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	applicantRepo := repository.NewApplicantRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	mediaService, err := service.NewMediaService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media service")
	}
	applicantService := service.NewApplicantService(cfg, applicantRepo, cat, rdb, log)
	assessmentService := service.NewAssessmentService(cfg, applicantService, cat, grader, fraudPipeline, engine, rdb, log)
	dashboardService := service.NewDashboardService(applicantRepo, assessmentRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Applicant: handler.NewApplicantHandler(applicantService, assessmentService, mediaService),
		Dashboard: handler.NewDashboardHandler(dashboardService, applicantService),
		WS:        handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	scoreWorker := worker.NewScoreWorker(pool, assessmentRepo, rdb, log)
	fraudWorker := worker.NewFraudWorker(assessmentRepo, rdb, log)

	go scoreWorker.Start(workerCtx)
	go fraudWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
