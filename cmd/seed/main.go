package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gigboard/internal/config"
	"gigboard/internal/db"
	"gigboard/internal/repository"
	"gigboard/internal/seed"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	data, err := seed.Demo(time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build demo data")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := seed.Run(ctx, seed.Store{
		Users:    repository.NewUserRepository(gormDB),
		Jobs:     repository.NewJobRepository(gormDB),
		Messages: repository.NewMessageRepository(gormDB),
	}, data)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed")
	}

	log.Info().
		Int("users", res.Users).
		Int("jobs", res.Jobs).
		Int("messages", res.Messages).
		Int("skipped", res.Skipped).
		Str("password", seed.DemoPassword).
		Msg("seed completed successfully")
}
