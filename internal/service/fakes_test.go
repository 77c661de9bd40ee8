package service

import (
	"context"
	"sync"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
)

// fakeAI implements port.AIProvider for testing.
type fakeAI struct {
	mu sync.Mutex

	embedFn func(ctx context.Context, text string) ([]float32, error)
	chatFn  func(ctx context.Context, system, user string) (string, error)
	pingErr error

	embedCalls  int
	chatPrompts []string
	pingCalls   int
}

func (f *fakeAI) ModelName() string { return "fake-model" }

func (f *fakeAI) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.embedCalls++
	f.mu.Unlock()
	if f.embedFn != nil {
		return f.embedFn(ctx, text)
	}
	return make([]float32, 4), nil
}

func (f *fakeAI) Chat(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.chatPrompts = append(f.chatPrompts, user)
	f.mu.Unlock()
	if f.chatFn != nil {
		return f.chatFn(ctx, system, user)
	}
	return `{"answer":"ok","references":[]}`, nil
}

func (f *fakeAI) Ping(ctx context.Context) error {
	f.mu.Lock()
	f.pingCalls++
	f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAI) embedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.embedCalls
}

func (f *fakeAI) prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.chatPrompts...)
}

// fakeChunkStore implements port.ChunkStore for testing.
type fakeChunkStore struct {
	searchFn  func(ctx context.Context, repositoryID string, vector []float32, limit int) ([]domain.RetrievedChunk, error)
	insertErr error

	inserted []domain.EmbeddedChunk
}

func (f *fakeChunkStore) InsertChunks(ctx context.Context, chunks []domain.EmbeddedChunk) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, chunks...)
	return nil
}

func (f *fakeChunkStore) SearchSimilar(ctx context.Context, repositoryID string, vector []float32, limit int) ([]domain.RetrievedChunk, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, repositoryID, vector, limit)
	}
	return nil, nil
}

func (f *fakeChunkStore) DeleteByRepository(ctx context.Context, repositoryID string) error {
	return nil
}

// fakeHistoryStore implements port.HistoryStore for testing.
type fakeHistoryStore struct {
	saveErr error
	saved   []*domain.QnARecord
}

func (f *fakeHistoryStore) Save(ctx context.Context, rec *domain.QnARecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeHistoryStore) List(ctx context.Context, repositoryID string) ([]domain.QnARecord, error) {
	var records []domain.QnARecord
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].RepositoryID == repositoryID {
			records = append(records, *f.saved[i])
		}
	}
	return records, nil
}

func (f *fakeHistoryStore) Delete(ctx context.Context, id string) error {
	for i, rec := range f.saved {
		if rec.ID == id {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeRepositoryStore implements port.RepositoryStore for testing.
type fakeRepositoryStore struct {
	created []string
	deleted []string
}

func (f *fakeRepositoryStore) Create(ctx context.Context, name string) (*domain.Repository, error) {
	f.created = append(f.created, name)
	return &domain.Repository{ID: "repo-1", Name: name}, nil
}

func (f *fakeRepositoryStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
