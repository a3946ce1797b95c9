package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tabbit/config"
	"github.com/Dosada05/tabbit/db"
	"github.com/Dosada05/tabbit/handlers"
	"github.com/Dosada05/tabbit/middleware"
	"github.com/Dosada05/tabbit/realtime"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/routes"
	"github.com/Dosada05/tabbit/services"
	"github.com/Dosada05/tabbit/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера: stdout и, опционально, JSONL-файл
	var logOut io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("failed to open log file", slog.String("path", cfg.LogFile), slog.Any("error", err))
			os.Exit(1)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Подключение к базе данных
	dbConn, dialect, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established", slog.String("dialect", string(dialect)))

	if err := db.Migrate(dbConn, dialect); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	uploader, err := storage.NewUploader(ctx, storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize draw archive uploader: %w", err)
	}
	if _, nop := uploader.(storage.NopUploader); nop {
		logger.Info("R2 is not configured, draw archiving disabled")
	} else {
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	wsHub := realtime.NewHub(logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, buildHandlers(dbConn, wsHub, uploader, logger, cfg), routes.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
		ErrorLog:    slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return wsHub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

func buildHandlers(
	dbConn *sql.DB,
	hub *realtime.Hub,
	uploader storage.FileUploader,
	logger *slog.Logger,
	cfg *config.Config,
) routes.Handlers {
	// Инициализация репозиториев
	tournamentRepo := repositories.NewTournamentRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	speakerRepo := repositories.NewSpeakerRepository(dbConn)
	judgeRepo := repositories.NewJudgeRepository(dbConn)
	roundRepo := repositories.NewRoundRepository(dbConn)
	motionRepo := repositories.NewMotionRepository(dbConn)
	debateRepo := repositories.NewDebateRepository(dbConn)
	ballotRepo := repositories.NewBallotRepository(dbConn)
	speakerPointsRepo := repositories.NewBallotSpeakerPointsRepository(dbConn)
	teamScoreRepo := repositories.NewBallotTeamScoreRepository(dbConn)
	tagRepo := repositories.NewTagRepository(dbConn)
	standingRepo := repositories.NewStandingRepository(dbConn)

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(tournamentRepo)
	drawService := services.NewDrawService(
		dbConn,
		tournamentRepo,
		roundRepo,
		debateRepo,
		standingRepo,
		hub,
		uploader,
		logger,
		services.DrawServiceConfig{DefaultTeamsPerMatchup: cfg.DrawTeamsPerMatchup},
	)

	return routes.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, drawService),
		Team:       handlers.NewTeamHandler(services.NewTeamService(teamRepo, speakerRepo)),
		Speaker:    handlers.NewSpeakerHandler(services.NewSpeakerService(speakerRepo)),
		Judge:      handlers.NewJudgeHandler(services.NewJudgeService(judgeRepo)),
		Round:      handlers.NewRoundHandler(services.NewRoundService(roundRepo, uploader, logger), drawService),
		Motion:     handlers.NewMotionHandler(services.NewMotionService(motionRepo)),
		Debate:     handlers.NewDebateHandler(services.NewDebateService(debateRepo)),
		Ballot:     handlers.NewBallotHandler(services.NewBallotService(ballotRepo, speakerPointsRepo, teamScoreRepo)),
		Tag:        handlers.NewTagHandler(services.NewTagService(tagRepo)),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins),
		View:       handlers.NewViewHandler(tournamentService),
	}
}
