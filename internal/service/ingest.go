package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vikas-saini-7/codebase-qna/internal/adapter/github"
	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// IngestService turns a codebase (ZIP upload or public GitHub repo) into
// stored, embedded chunks under a fresh repository record.
type IngestService struct {
	repos    port.RepositoryStore
	chunks   port.ChunkStore
	embedder *EmbeddingService
	github   *github.Client
}

// NewIngestService creates the ingestion pipeline.
func NewIngestService(repos port.RepositoryStore, chunks port.ChunkStore, embedder *EmbeddingService, gh *github.Client) *IngestService {
	return &IngestService{repos: repos, chunks: chunks, embedder: embedder, github: gh}
}

// IndexZip ingests an uploaded ZIP archive. The temp extraction directory is
// removed on every exit path.
func (s *IngestService) IndexZip(ctx context.Context, fileName string, archive io.Reader) (*domain.IndexSummary, error) {
	tempDir, err := os.MkdirTemp("", "cbqna-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	zipPath := filepath.Join(tempDir, "upload.zip")
	if err := saveToFile(zipPath, archive); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	extractDir := filepath.Join(tempDir, "extracted")
	if err := extractZip(zipPath, extractDir); err != nil {
		return nil, fmt.Errorf("extract zip: %w", err)
	}

	name := strings.TrimSuffix(fileName, ".zip")
	return s.indexDir(ctx, name, extractDir)
}

// IndexGitHub ingests a public GitHub repository by downloading its zipball.
func (s *IngestService) IndexGitHub(ctx context.Context, githubURL string) (*domain.IndexSummary, error) {
	owner, repo, err := github.ParseRepoURL(githubURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrInvalidInput, err)
	}

	tempDir, err := os.MkdirTemp("", "cbqna-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	zipPath, err := s.github.DownloadZipball(ctx, owner, repo, tempDir)
	if err != nil {
		return nil, err
	}

	extractDir := filepath.Join(tempDir, "extracted")
	if err := extractZip(zipPath, extractDir); err != nil {
		return nil, fmt.Errorf("extract zip: %w", err)
	}

	return s.indexDir(ctx, owner+"/"+repo, extractDir)
}

// indexDir runs the shared tail of both flows: filter files, chunk, embed
// with the batch worker pool, drop failed vectors, and store.
func (s *IngestService) indexDir(ctx context.Context, name, root string) (*domain.IndexSummary, error) {
	log := map[string]any{}

	repo, err := s.repos.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}

	files, err := collectFiles(root)
	if err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}
	log["files_scanned"] = len(files)

	filesRead := 0
	var allChunks []domain.Chunk
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		filesRead++
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		allChunks = append(allChunks, ChunkFile(filepath.ToSlash(rel), string(content))...)
	}
	log["total_chunks"] = len(allChunks)

	texts := make([]string, len(allChunks))
	for i, chunk := range allChunks {
		texts[i] = chunk.Content
	}

	embedStart := time.Now()
	vectors := s.embedder.EmbedBatch(ctx, texts)
	log["embedding_time_ms"] = time.Since(embedStart).Milliseconds()

	embedded := make([]domain.EmbeddedChunk, 0, len(allChunks))
	for i, chunk := range allChunks {
		if len(vectors[i]) == 0 {
			continue
		}
		embedded = append(embedded, domain.EmbeddedChunk{
			RepositoryID: repo.ID,
			Chunk:        chunk,
			Vector:       vectors[i],
		})
	}

	insertStart := time.Now()
	if err := s.chunks.InsertChunks(ctx, embedded); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}
	log["insert_time_ms"] = time.Since(insertStart).Milliseconds()

	slog.Info("indexing complete",
		"repository_id", repo.ID,
		"files", filesRead,
		"chunks", len(allChunks),
		"stored", len(embedded),
	)

	return &domain.IndexSummary{
		RepositoryID:  repo.ID,
		FilesIndexed:  filesRead,
		ChunksCreated: len(allChunks),
		Status:        "completed",
		Log:           log,
	}, nil
}

func saveToFile(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

// extractZip extracts an archive into destDir. Entries that would escape
// destDir are skipped.
func extractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	cleanDest := filepath.Clean(destDir)
	for _, file := range reader.File {
		target := filepath.Join(cleanDest, file.Name)
		if !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractZipEntry(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(file *zip.File, target string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
