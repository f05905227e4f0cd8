package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/quiz-bank/internal/config"
	"github.com/gokatarajesh/quiz-bank/internal/db"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, or status")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	sqlDB, err := db.OpenSQL(ctx, db.Options{
		Driver:      db.Driver(cfg.Store.Driver),
		SQLitePath:  cfg.Store.Path,
		PostgresDSN: cfg.Store.Postgres.DSN(),
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open database connection")
	}
	defer sqlDB.Close()

	log.Info().Str("driver", cfg.Store.Driver).Str("command", *command).Msg("connected to database")

	if err := db.RunMigrations(ctx, sqlDB, db.Driver(cfg.Store.Driver), *command, log.Logger.Level(zerolog.InfoLevel)); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migration command completed")
}
