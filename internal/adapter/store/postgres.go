package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

var _ port.RepositoryStore = (*PostgresStore)(nil)

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// Ping verifies the database connection with a round-trip query.
func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// --- Repositories ---

// Create inserts a new repository record.
func (s *PostgresStore) Create(ctx context.Context, name string) (*domain.Repository, error) {
	query := `INSERT INTO repositories (id, name)
	          VALUES ($1, $2)
	          RETURNING id, name, created_at`

	var repo domain.Repository
	err := s.db.QueryRowContext(ctx, query, uuid.NewString(), name).Scan(
		&repo.ID, &repo.Name, &repo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return &repo, nil
}

// Delete removes a repository together with its chunks and QnA history.
// All three deletes run in one transaction so a partial cascade is never
// observable.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE repository_id = $1`, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM qna_history WHERE repository_id = $1`, id); err != nil {
		return fmt.Errorf("delete qna history: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return port.ErrRepoNotFound
	}

	return tx.Commit()
}
