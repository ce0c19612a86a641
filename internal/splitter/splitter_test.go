package splitter

import (
	"strings"
	"testing"
)

// synthetic content where every position is identifiable
func makeContent(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return string(b)
}

func TestSplitExactBoundaries(t *testing.T) {
	content := makeContent(2500)
	chunks := Split(content, 1000, 200)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	want := []string{
		content[0:1000],
		content[800:1800],
		content[1600:2500],
		content[2400:2500],
	}
	for i, w := range want {
		if chunks[i] != w {
			t.Fatalf("chunk %d boundaries wrong: got %d chars starting %q", i, len(chunks[i]), chunks[i][:10])
		}
	}
}

func TestSplitChunkSizeAndOverlap(t *testing.T) {
	content := makeContent(5000)
	size, overlap := 1000, 200
	chunks := Split(content, size, overlap)

	for i, c := range chunks {
		if len(c) > size {
			t.Fatalf("chunk %d exceeds max size: %d > %d", i, len(c), size)
		}
	}
	for i := 0; i < len(chunks)-1; i++ {
		next := chunks[i+1]
		n := overlap
		if len(next) < n {
			n = len(next)
		}
		suffix := chunks[i][len(chunks[i])-overlap:]
		if suffix[:n] != next[:n] {
			t.Fatalf("chunks %d and %d do not share the configured overlap", i, i+1)
		}
	}
}

func TestSplitShortContent(t *testing.T) {
	chunks := Split("short text", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("expected single chunk, got %#v", chunks)
	}
}

func TestSplitEmpty(t *testing.T) {
	if chunks := Split("   ", 1000, 200); chunks != nil {
		t.Fatalf("expected nil for blank content, got %#v", chunks)
	}
}

func TestSplitDegenerateConfig(t *testing.T) {
	content := makeContent(3000)

	// overlap >= size must not loop forever or panic
	chunks := Split(content, 100, 100)
	if len(chunks) == 0 {
		t.Fatalf("expected chunks despite degenerate overlap")
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Fatalf("chunk %d exceeds size after overlap correction", i)
		}
	}

	// non-positive size falls back to the default
	chunks = Split(content, 0, -5)
	if len(chunks) == 0 {
		t.Fatalf("expected chunks with default size")
	}
	for _, c := range chunks {
		if len(c) > DefaultChunkSize {
			t.Fatalf("default size not applied")
		}
	}
}

func TestSplitCoversContent(t *testing.T) {
	content := makeContent(2500)
	chunks := Split(content, 1000, 200)

	var rebuilt strings.Builder
	step := 1000 - 200
	for i, c := range chunks {
		if i == len(chunks)-1 {
			rebuilt.WriteString(c)
			continue
		}
		rebuilt.WriteString(c[:step])
	}
	// rebuilt prefix must match original start; tail handled by last chunk
	if !strings.HasPrefix(content, rebuilt.String()[:step*(len(chunks)-1)]) {
		t.Fatalf("chunks do not cover the original content in order")
	}
}

func TestChunksNumbering(t *testing.T) {
	chunks := Chunks(makeContent(2500), 1000, 200)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.ChunkID != i+1 {
			t.Fatalf("chunk %d has id %d", i, c.ChunkID)
		}
	}
}
