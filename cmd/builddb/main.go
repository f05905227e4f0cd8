package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/quiz-bank/internal/app"
	"github.com/gokatarajesh/quiz-bank/internal/config"
	"github.com/gokatarajesh/quiz-bank/internal/db/repository"
	"github.com/gokatarajesh/quiz-bank/internal/document"
	"github.com/gokatarajesh/quiz-bank/internal/ingest"
	"github.com/gokatarajesh/quiz-bank/internal/question"
)

func main() {
	var (
		docPath string
		dbPath  = flag.String("db", "", "Path to the SQLite store (overrides STORE_PATH)")
		driver  = flag.String("driver", "", "Store driver: sqlite or postgres (overrides STORE_DRIVER)")
		dump    = flag.String("dump", "", "Write parsed records as YAML to this path (- for stdout)")
	)
	flag.StringVar(&docPath, "docx", "", "Path to the source study document (.docx or plain text)")
	flag.StringVar(&docPath, "doc", "", "Alias for -docx")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if docPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if _, err := os.Stat(docPath); err != nil {
		log.Fatal().Err(err).Str("path", docPath).Msg("document not found")
	}

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if *driver != "" {
		cfg.Store.Driver = *driver
	}

	store, err := app.OpenStore(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	importer := ingest.NewImporter(repository.NewQuestionRepository(store), log.Logger)
	report, err := importer.ImportFile(ctx, docPath)
	if err != nil {
		if errors.Is(err, document.ErrMalformedDocument) {
			log.Error().Err(err).Msg("no questions were parsed; check the document formatting")
		} else {
			log.Error().Err(err).Msg("import failed")
		}
		store.Close()
		os.Exit(1)
	}

	for _, sk := range report.Skipped {
		log.Warn().Int("line", sk.Line).Int("qnum", sk.Qnum).Str("reason", sk.Reason).Msg("question block skipped")
	}

	if *dump != "" {
		if err := dumpRecords(*dump, report.Records); err != nil {
			log.Error().Err(err).Str("path", *dump).Msg("failed to dump records")
			store.Close()
			os.Exit(1)
		}
	}

	target := cfg.Store.Path
	if cfg.Store.Driver == "postgres" {
		target = cfg.Store.Postgres.Database
	}
	log.Info().
		Int("imported", report.Imported).
		Int("skipped", len(report.Skipped)).
		Str("driver", cfg.Store.Driver).
		Str("store", target).
		Msg("import complete")
}

func dumpRecords(path string, records []question.Record) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return question.ExportYAML(w, records)
}
