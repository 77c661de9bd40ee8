package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
)

func TestVectorStore_SearchSimilarScopedToRepository(t *testing.T) {
	pg, mock := newMockStore(t)
	v := NewVectorStore(pg, 3)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "repository_id", "file_path", "start_line", "end_line", "content", "created_at", "similarity"}).
		AddRow("c1", "repo-1", "main.go", 1, 30, "func main() {}", now, 0.9)
	mock.ExpectQuery(`(?s)SELECT .* FROM chunks c.*WHERE c\.repository_id = \$2.*ORDER BY c\.embedding <=> \$1::vector.*LIMIT \$3`).
		WithArgs("[1,2,3]", "repo-1", 5).
		WillReturnRows(rows)

	results, err := v.SearchSimilar(context.Background(), "repo-1", []float32{1, 2, 3}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)
	assert.Equal(t, "repo-1", results[0].RepositoryID)
	assert.Equal(t, 0.9, results[0].Similarity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorStore_SearchSimilarEmptyResult(t *testing.T) {
	pg, mock := newMockStore(t)
	v := NewVectorStore(pg, 3)

	mock.ExpectQuery(`SELECT .* FROM chunks c`).
		WithArgs("[0,0,0]", "repo-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "repository_id", "file_path", "start_line", "end_line", "content", "created_at", "similarity"}))

	results, err := v.SearchSimilar(context.Background(), "repo-1", make([]float32, 3), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorStore_InsertChunksInTransaction(t *testing.T) {
	pg, mock := newMockStore(t)
	v := NewVectorStore(pg, 3)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO chunks`)
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "repo-1", "a.go", 1, 2, "package a", "[1,2,3]").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "repo-1", "b.go", 1, 2, "package b", "[4,5,6]").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	chunks := []domain.EmbeddedChunk{
		{RepositoryID: "repo-1", Chunk: domain.Chunk{FilePath: "a.go", StartLine: 1, EndLine: 2, Content: "package a"}, Vector: []float32{1, 2, 3}},
		{RepositoryID: "repo-1", Chunk: domain.Chunk{FilePath: "b.go", StartLine: 1, EndLine: 2, Content: "package b"}, Vector: []float32{4, 5, 6}},
	}
	require.NoError(t, v.InsertChunks(context.Background(), chunks))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorStore_InsertChunksEmptyIsNoOp(t *testing.T) {
	pg, mock := newMockStore(t)
	v := NewVectorStore(pg, 3)

	require.NoError(t, v.InsertChunks(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
