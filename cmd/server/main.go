package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pdf-qa/internal/config"
	"pdf-qa/internal/embedding"
	"pdf-qa/internal/hashstore"
	"pdf-qa/internal/index"
	"pdf-qa/internal/rag"
	"pdf-qa/internal/server"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.LoadCredentials(); err != nil {
		log.Fatal().Err(err).Msg("Error loading credentials")
	}

	store := newHashStore(cfg)

	vectorIndex, err := index.New(cfg.Index.Path, cfg.Index.Collection)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	ingestor := rag.NewIngestor(store, vectorIndex, embedder, cfg)
	answerer := rag.NewRAG(vectorIndex, embedder, nil, cfg)

	srv := server.New(ingestor, answerer, store, cfg)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func newHashStore(cfg *config.Config) hashstore.Store {
	switch cfg.HashStore.Backend {
	case "postgres":
		store := hashstore.NewPGStore(cfg.HashStore.DSN, cfg.HashStore.Debug)
		if err := store.Init(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Error initializing hash store table")
		}
		return store
	default:
		store, err := hashstore.NewFileStore(cfg.HashStore.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing hash store")
		}
		return store
	}
}
