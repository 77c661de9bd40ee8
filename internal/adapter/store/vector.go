package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// insertBatchSize bounds how many chunk rows go into one transaction.
const insertBatchSize = 100

// VectorStore handles pgvector-specific operations for chunk embeddings.
type VectorStore struct {
	store     *PostgresStore
	dimension int
}

var _ port.ChunkStore = (*VectorStore)(nil)

// NewVectorStore creates a vector store backed by the given Postgres store.
func NewVectorStore(store *PostgresStore, dimension int) *VectorStore {
	return &VectorStore{store: store, dimension: dimension}
}

// InsertChunks persists chunks paired with their vectors, in batches of
// insertBatchSize rows per transaction.
func (v *VectorStore) InsertChunks(ctx context.Context, chunks []domain.EmbeddedChunk) error {
	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := v.insertBatch(ctx, chunks[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (v *VectorStore) insertBatch(ctx context.Context, chunks []domain.EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, repository_id, file_path, start_line, end_line, content, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::vector)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), c.RepositoryID, c.FilePath, c.StartLine, c.EndLine, c.Content, vectorToString(c.Vector),
		); err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
	}

	return tx.Commit()
}

// SearchSimilar performs a cosine similarity search over one repository's
// chunks. Results are ordered by similarity descending; an empty slice means
// the repository has no matching chunks.
func (v *VectorStore) SearchSimilar(ctx context.Context, repositoryID string, vector []float32, limit int) ([]domain.RetrievedChunk, error) {
	query := `SELECT c.id, c.repository_id, c.file_path, c.start_line, c.end_line, c.content, c.created_at,
	                 1 - (c.embedding <=> $1::vector) AS similarity
	          FROM chunks c
	          WHERE c.repository_id = $2
	          ORDER BY c.embedding <=> $1::vector
	          LIMIT $3`

	rows, err := v.store.db.QueryContext(ctx, query, vectorToString(vector), repositoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var rc domain.RetrievedChunk
		if err := rows.Scan(
			&rc.ID, &rc.RepositoryID, &rc.FilePath, &rc.StartLine, &rc.EndLine,
			&rc.Content, &rc.CreatedAt, &rc.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan similar: %w", err)
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}

// DeleteByRepository deletes all chunks for a repository.
func (v *VectorStore) DeleteByRepository(ctx context.Context, repositoryID string) error {
	_, err := v.store.db.ExecContext(ctx, `DELETE FROM chunks WHERE repository_id = $1`, repositoryID)
	return err
}

// HealthCheck runs a zero-vector search scoped to the nil UUID to exercise
// the vector operator end to end.
func (v *VectorStore) HealthCheck(ctx context.Context) error {
	_, err := v.SearchSimilar(ctx, uuid.Nil.String(), make([]float32, v.dimension), 1)
	return err
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
