package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pdf-qa/internal/config"
	"pdf-qa/internal/embedding"
	"pdf-qa/internal/hashstore"
	"pdf-qa/internal/index"
	"pdf-qa/internal/rag"
)

const defaultConfigPath = "./configs/config.yaml"

// Batch ingestion: runs the same pipeline as the web upload endpoint over
// local files, for pre-seeding an index without the UI.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal().Msg("Usage: ingest [-config path] file...")
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.LoadCredentials(); err != nil {
		log.Fatal().Err(err).Msg("Error loading credentials")
	}

	var store hashstore.Store
	if cfg.HashStore.Backend == "postgres" {
		pg := hashstore.NewPGStore(cfg.HashStore.DSN, cfg.HashStore.Debug)
		if err := pg.Init(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Error initializing hash store table")
		}
		store = pg
	} else {
		fs, err := hashstore.NewFileStore(cfg.HashStore.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing hash store")
		}
		store = fs
	}

	vectorIndex, err := index.New(cfg.Index.Path, cfg.Index.Collection)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	ingestor := rag.NewIngestor(store, vectorIndex, embedder, cfg)

	ctx := context.Background()
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error reading file")
			continue
		}
		result, err := ingestor.Ingest(ctx, filepath.Base(path), data)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error ingesting file")
			continue
		}
		log.Info().
			Str("filename", result.Filename).
			Str("status", string(result.Status)).
			Int("chunks", result.Chunks).
			Msg("Done")
	}
}
