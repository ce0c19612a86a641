package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const apiKeyEnv = "OPENROUTER_API_KEY"

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type RAGConfig struct {
	ChunkSize       int `yaml:"chunk_size"`
	ChunkOverlap    int `yaml:"chunk_overlap"`
	TopK            int `yaml:"top_k"`
	MaxContextChars int `yaml:"max_context_chars"`
	HistoryLimit    int `yaml:"history_limit"`
}

// LLMConfig describes one OpenAI-compatible endpoint. Key is never read
// from YAML; it is filled from the environment at startup.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Key     string `yaml:"-"`
}

type IndexConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

type HashStoreConfig struct {
	Backend string `yaml:"backend"` // "file" or "postgres"
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
	Debug   bool   `yaml:"debug"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	RAG       RAGConfig       `yaml:"rag"`
	Embedding LLMConfig       `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Index     IndexConfig     `yaml:"index"`
	HashStore HashStoreConfig `yaml:"hash_store"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadCredentials reads the API key from the environment and applies it to
// both the embedding and the chat endpoint. A missing key is a startup
// error; nothing should run without credentials.
func (c *Config) LoadCredentials() error {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return fmt.Errorf("missing %s environment variable", apiKeyEnv)
	}
	c.Embedding.Key = key
	c.LLM.Key = key
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 2000
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 500
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 5
	}
	if cfg.RAG.MaxContextChars == 0 {
		cfg.RAG.MaxContextChars = 8000
	}
	if cfg.RAG.HistoryLimit == 0 {
		cfg.RAG.HistoryLimit = 6
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "google/gemini-2.5-flash"
	}
	if cfg.Index.Path == "" {
		cfg.Index.Path = "./data/index"
	}
	if cfg.Index.Collection == "" {
		cfg.Index.Collection = "documents"
	}
	if cfg.HashStore.Backend == "" {
		cfg.HashStore.Backend = "file"
	}
	if cfg.HashStore.Path == "" {
		cfg.HashStore.Path = "./data/hashes.txt"
	}
}
