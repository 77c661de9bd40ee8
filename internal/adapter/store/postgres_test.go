package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresStore{db: db}, mock
}

func TestPostgresStore_Create(t *testing.T) {
	pg, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO repositories (id, name)`)).
		WithArgs(sqlmock.AnyArg(), "my-project").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("repo-1", "my-project", now))

	repo, err := pg.Create(context.Background(), "my-project")
	require.NoError(t, err)
	assert.Equal(t, "repo-1", repo.ID)
	assert.Equal(t, "my-project", repo.Name)
	assert.Equal(t, now, repo.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteCascadesInOneTransaction(t *testing.T) {
	pg, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM chunks WHERE repository_id = $1`)).
		WithArgs("repo-1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM qna_history WHERE repository_id = $1`)).
		WithArgs("repo-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM repositories WHERE id = $1`)).
		WithArgs("repo-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, pg.Delete(context.Background(), "repo-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteUnknownRepositoryRollsBack(t *testing.T) {
	pg, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM chunks WHERE repository_id = $1`)).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM qna_history WHERE repository_id = $1`)).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM repositories WHERE id = $1`)).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := pg.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, port.ErrRepoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
