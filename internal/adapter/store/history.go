package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// historyLimit is how many QnA records a repository retains.
const historyLimit = 10

// HistoryStore persists resolved Q&A records in the qna_history table.
type HistoryStore struct {
	store *PostgresStore
}

var _ port.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore creates a history store backed by the given Postgres store.
func NewHistoryStore(store *PostgresStore) *HistoryStore {
	return &HistoryStore{store: store}
}

// Save inserts a record and prunes rows beyond the newest historyLimit for
// that repository. Insert and prune run in one transaction so callers never
// have to manage retention themselves.
func (h *HistoryStore) Save(ctx context.Context, rec *domain.QnARecord) error {
	referencesJSON, err := json.Marshal(rec.References)
	if err != nil {
		return fmt.Errorf("marshal references: %w", err)
	}
	snippetsJSON, err := json.Marshal(rec.Snippets)
	if err != nil {
		return fmt.Errorf("marshal snippets: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := h.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO qna_history (id, repository_id, question, answer, "references", snippets)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING created_at`
	err = tx.QueryRowContext(ctx, insert,
		rec.ID, rec.RepositoryID, rec.Question, rec.Answer, string(referencesJSON), string(snippetsJSON),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert qna: %w", err)
	}

	// seq is a bigserial insertion counter; it breaks created_at ties so the
	// record removed is always the oldest-inserted one.
	prune := `DELETE FROM qna_history
	          WHERE repository_id = $1
	            AND id NOT IN (
	                SELECT id FROM qna_history
	                WHERE repository_id = $1
	                ORDER BY created_at DESC, seq DESC
	                LIMIT $2)`
	if _, err := tx.ExecContext(ctx, prune, rec.RepositoryID, historyLimit); err != nil {
		return fmt.Errorf("prune qna history: %w", err)
	}

	return tx.Commit()
}

// List returns up to historyLimit records for a repository, newest first.
// Stored references/snippets that fail to decode degrade to empty lists
// rather than failing the whole fetch.
func (h *HistoryStore) List(ctx context.Context, repositoryID string) ([]domain.QnARecord, error) {
	query := `SELECT id, repository_id, question, answer, "references", snippets, created_at
	          FROM qna_history
	          WHERE repository_id = $1
	          ORDER BY created_at DESC, seq DESC
	          LIMIT $2`

	rows, err := h.store.db.QueryContext(ctx, query, repositoryID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list qna history: %w", err)
	}
	defer rows.Close()

	var records []domain.QnARecord
	for rows.Next() {
		var (
			rec            domain.QnARecord
			referencesJSON string
			snippetsJSON   string
		)
		if err := rows.Scan(
			&rec.ID, &rec.RepositoryID, &rec.Question, &rec.Answer,
			&referencesJSON, &snippetsJSON, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan qna: %w", err)
		}
		rec.References = decodeReferences(referencesJSON)
		rec.Snippets = decodeSnippets(snippetsJSON)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes exactly one record by id.
func (h *HistoryStore) Delete(ctx context.Context, id string) error {
	_, err := h.store.db.ExecContext(ctx, `DELETE FROM qna_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete qna: %w", err)
	}
	return nil
}

func decodeReferences(raw string) []domain.Reference {
	var refs []domain.Reference
	if err := json.Unmarshal([]byte(raw), &refs); err != nil || refs == nil {
		return []domain.Reference{}
	}
	return refs
}

func decodeSnippets(raw string) []domain.Snippet {
	var snippets []domain.Snippet
	if err := json.Unmarshal([]byte(raw), &snippets); err != nil || snippets == nil {
		return []domain.Snippet{}
	}
	return snippets
}
