package domain

import "time"

// Repository is an indexed codebase. It owns all chunks and QnA records
// created for it; deleting it cascades to both.
type Repository struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexSummary reports the outcome of one ingestion run.
type IndexSummary struct {
	RepositoryID  string         `json:"repository_id"`
	FilesIndexed  int            `json:"files_indexed"`
	ChunksCreated int            `json:"chunks_created"`
	Status        string         `json:"status"`
	Log           map[string]any `json:"log"`
}
