package splitter

import (
	"strings"

	"pdf-qa/internal/models"
)

const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 500
)

// Split cuts content into fixed overlapping windows. Window starts advance
// by size-overlap, so consecutive chunks share exactly overlap characters
// and no chunk exceeds size. The boundaries are deterministic: size 1000
// with overlap 200 over 2500 characters yields [0:1000] [800:1800]
// [1600:2500] [2400:2500].
func Split(content string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if len(content) <= size {
		return []string{content}
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(content); start += step {
		end := start + size
		if end > len(content) {
			end = len(content)
		}
		chunks = append(chunks, content[start:end])
	}
	return chunks
}

// Chunks wraps Split and numbers the windows starting at 1.
func Chunks(content string, size, overlap int) []models.Chunk {
	var chunks []models.Chunk
	for i, c := range Split(content, size, overlap) {
		chunks = append(chunks, models.Chunk{Content: c, ChunkID: i + 1})
	}
	return chunks
}
