package domain

import "time"

// Chunk is a line-numbered slice of one source file used as a retrieval unit.
// Line numbers are 1-indexed and EndLine is inclusive.
type Chunk struct {
	FilePath  string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Content   string `json:"content"`
}

// LineCount returns the number of lines covered by the chunk.
func (c Chunk) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// EmbeddedChunk pairs a chunk with its vector, ready for storage.
type EmbeddedChunk struct {
	RepositoryID string
	Chunk
	Vector []float32
}

// RetrievedChunk is produced by similarity search, ranked by descending
// similarity. It is transient per query and never persisted itself.
type RetrievedChunk struct {
	ID           string    `json:"id"`
	RepositoryID string    `json:"-"`
	FilePath     string    `json:"file"`
	StartLine    int       `json:"start_line"`
	EndLine      int       `json:"end_line"`
	Content      string    `json:"content"`
	Similarity   float64   `json:"similarity"`
	CreatedAt    time.Time `json:"-"`
}
