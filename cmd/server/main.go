package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "gigboard/docs" // swagger docs

	"gigboard/internal/assist"
	"gigboard/internal/audit"
	"gigboard/internal/auth"
	"gigboard/internal/cache"
	"gigboard/internal/config"
	"gigboard/internal/db"
	"gigboard/internal/handler"
	"gigboard/internal/repository"
	"gigboard/internal/repository/memory"
	"gigboard/internal/router"
	"gigboard/internal/seed"
	"gigboard/internal/service"
)

// repositories is the set of stores selected by STORE.
type repositories struct {
	users    repository.UserRepository
	jobs     repository.JobRepository
	messages repository.MessageRepository
	events   repository.JobEventRepository
}

// @title Gigboard API
// @version 1.0
// @description Local job marketplace: post jobs, apply, assign, chat, complete and confirm payment.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	repos, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("store init")
	}

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing without cache")
		}
		cancel()
		defer cacheClient.Close()
	} else {
		log.Info().Msg("REDIS_ADDR not set, cache and token revocation disabled")
	}

	recorder := audit.NewRecorder(repos.events)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repos.users, jwtService, tokenStore)
	userService := service.NewUserService(repos.users, cacheClient)
	jobService := service.NewJobService(repos.jobs, repos.users, cacheClient,
		service.NewCacheInvalidator(cacheClient),
		recorder,
	)
	queryService := service.NewQueryService(repos.jobs)
	messageService := service.NewMessageService(repos.messages, repos.jobs)

	var suggester assist.Suggester
	if cfg.OllamaURL != "" {
		assistant, err := assist.New(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("assist init")
		}
		suggester = assistant
		log.Info().Str("model", cfg.OllamaModel).Msg("suggestions enabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	router.Register(e, cfg, tokenStore, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService, queryService),
		Job:     handler.NewJobHandler(jobService, queryService, userService),
		Message: handler.NewMessageHandler(messageService),
		Assist:  handler.NewAssistHandler(suggester, jobService, messageService),
		Event:   handler.NewEventHandler(audit.NewHistory(repos.jobs, repos.events)),
		Seed: handler.NewSeedHandler(seed.Store{
			Users:    repos.users,
			Jobs:     repos.jobs,
			Messages: repos.messages,
		}),
	})

	log.Info().Str("url", swaggerURL(cfg.SwaggerHost)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("store", cfg.Store).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	// Flush job events queued by requests that finished before shutdown.
	_ = recorder.Close()
	log.Info().Msg("server exited")
}

func openStore(cfg *config.Config) (repositories, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		mem := memory.New()
		return repositories{
			users:    mem.Users(),
			jobs:     mem.Jobs(),
			messages: mem.Messages(),
			events:   mem.Events(),
		}, nil
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return repositories{}, err
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return repositories{}, err
	}
	return repositories{
		users:    repository.NewUserRepository(gormDB),
		jobs:     repository.NewJobRepository(gormDB),
		messages: repository.NewMessageRepository(gormDB),
		events:   repository.NewJobEventRepository(gormDB),
	}, nil
}

// setupLogger configures the global zerolog logger.
func setupLogger(level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// swaggerURL builds the docs URL; host may already carry a scheme.
func swaggerURL(host string) string {
	if host == "" {
		return "http://localhost:5000/swagger/index.html"
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}
