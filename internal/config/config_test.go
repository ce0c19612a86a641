package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("explicit addr lost: %q", cfg.Server.Addr)
	}
	if cfg.RAG.ChunkSize != 2000 || cfg.RAG.ChunkOverlap != 500 {
		t.Fatalf("chunk defaults not applied: %+v", cfg.RAG)
	}
	if cfg.RAG.TopK != 5 {
		t.Fatalf("top_k default not applied: %d", cfg.RAG.TopK)
	}
	if cfg.HashStore.Backend != "file" || cfg.HashStore.Path == "" {
		t.Fatalf("hash store defaults not applied: %+v", cfg.HashStore)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadCredentialsMissingKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	cfg := &Config{}
	if err := cfg.LoadCredentials(); err == nil {
		t.Fatalf("expected error when %s is unset", apiKeyEnv)
	}
}

func TestLoadCredentialsAppliesKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "test-key")
	cfg := &Config{}
	if err := cfg.LoadCredentials(); err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if cfg.Embedding.Key != "test-key" || cfg.LLM.Key != "test-key" {
		t.Fatalf("key not applied to both endpoints: %+v", cfg)
	}
}
