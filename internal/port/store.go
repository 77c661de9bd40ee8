package port

import (
	"context"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
)

// ChunkStore persists embedded chunks and answers similarity queries.
type ChunkStore interface {
	// InsertChunks stores chunks paired 1:1 with their vectors.
	InsertChunks(ctx context.Context, chunks []domain.EmbeddedChunk) error

	// SearchSimilar returns up to limit chunks belonging to repositoryID,
	// ordered by similarity descending. An empty result is not an error.
	SearchSimilar(ctx context.Context, repositoryID string, vector []float32, limit int) ([]domain.RetrievedChunk, error)

	// DeleteByRepository removes all chunks owned by a repository.
	DeleteByRepository(ctx context.Context, repositoryID string) error
}

// HistoryStore persists resolved Q&A records. Save enforces the
// keep-last-10-per-repository retention policy.
type HistoryStore interface {
	Save(ctx context.Context, rec *domain.QnARecord) error
	List(ctx context.Context, repositoryID string) ([]domain.QnARecord, error)
	Delete(ctx context.Context, id string) error
}

// RepositoryStore manages repository records.
type RepositoryStore interface {
	Create(ctx context.Context, name string) (*domain.Repository, error)

	// Delete removes a repository and cascades to its chunks and history.
	Delete(ctx context.Context, id string) error
}
