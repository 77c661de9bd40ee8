package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// defaultEmbedConcurrency is the worker-pool width for batch embedding.
const defaultEmbedConcurrency = 5

// EmbeddingService converts text into fixed-dimension vectors. All vectors it
// returns have exactly the declared dimension; a model response of any other
// length is rejected as port.ErrEmbedding.
type EmbeddingService struct {
	ai          port.AIProvider
	dimension   int
	concurrency int

	mu   sync.Mutex
	warm bool
}

// NewEmbeddingService creates a gateway around the given AI provider.
func NewEmbeddingService(ai port.AIProvider, dimension, concurrency int) *EmbeddingService {
	if concurrency <= 0 {
		concurrency = defaultEmbedConcurrency
	}
	return &EmbeddingService{ai: ai, dimension: dimension, concurrency: concurrency}
}

// Dimension returns the declared embedding dimension.
func (s *EmbeddingService) Dimension() int {
	return s.dimension
}

// Embed returns the embedding vector for text. Empty or whitespace-only text
// short-circuits to an all-zero vector without calling the model.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, s.dimension), nil
	}

	if err := s.warmup(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrEmbedding, err)
	}

	vector, err := s.ai.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrEmbedding, err)
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: got %d dimensions, expected %d", port.ErrEmbedding, len(vector), s.dimension)
	}
	return vector, nil
}

// warmup verifies the model backend once before the first real call.
// Concurrent callers contend on the mutex so only one ping is in flight;
// a failed warmup is retried on the next call rather than latched.
func (s *EmbeddingService) warmup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warm {
		return nil
	}
	if err := s.ai.Ping(ctx); err != nil {
		return fmt.Errorf("model warmup: %w", err)
	}
	s.warm = true
	return nil
}

// EmbedBatch embeds all texts with a fixed pool of workers advancing a shared
// cursor. The result has the same length and ordering as the input regardless
// of completion order. A failed item yields a nil vector so callers can filter
// it out before storage; one item's failure never aborts the rest.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	results := make([][]float32, len(texts))
	if len(texts) == 0 {
		return results
	}

	var cursor atomic.Int64
	cursor.Store(-1)

	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1))
				if i >= len(texts) {
					return
				}
				vector, err := s.Embed(ctx, texts[i])
				if err != nil {
					slog.Error("embedding failed for chunk", "index", i, "error", err)
					continue
				}
				results[i] = vector
			}
		}()
	}
	wg.Wait()
	return results
}
