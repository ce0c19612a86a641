package hashstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FileStore keeps one "hash<TAB>filename" line per ingested document in a
// flat text file. An unreadable or missing file counts as no hashes
// recorded; ingestion must not fail because history is gone.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating hash store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Has(_ context.Context, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.readAll() {
		if e.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore) Record(_ context.Context, hash, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening hash store: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\t%s\n", hash, filename); err != nil {
		return fmt.Errorf("appending hash: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

func (s *FileStore) readAll() []Entry {
	f, err := os.Open(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("Hash store unreadable, treating as empty")
		}
		return nil
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hash, filename, _ := strings.Cut(line, "\t")
		if hash == "" {
			continue
		}
		entries = append(entries, Entry{Hash: hash, Filename: filename, CreatedAt: time.Time{}})
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Hash store partially read")
	}
	return entries
}
