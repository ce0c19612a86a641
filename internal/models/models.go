package models

// Chunk is a bounded window of extracted text, the unit of embedding.
type Chunk struct {
	Content string
	ChunkID int
}

// ChunkEmbedding pairs a chunk with its vector and source metadata.
type ChunkEmbedding struct {
	Content        string
	Embedding      []float32
	SourceFilename string
	ChunkID        int
}

// Exchange is one question/answer turn kept as conversation history.
type Exchange struct {
	Question string
	Answer   string
}

// Answer is the generated response returned to the user.
type Answer struct {
	Content    string
	Sources    []string
	TokensUsed int
}
