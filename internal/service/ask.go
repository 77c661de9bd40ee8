package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

const (
	minQuestionLength = 3
	retrieveTopK      = 5

	defaultGenerateTimeout = 30 * time.Second

	systemPrompt       = "You are a codebase Q&A assistant."
	fallbackAnswerText = "Model returned invalid format."
)

// AskService resolves one question against an indexed repository:
// embed -> retrieve -> build prompt -> generate -> parse/retry -> persist.
type AskService struct {
	embedder *EmbeddingService
	chunks   port.ChunkStore
	history  port.HistoryStore
	ai       port.AIProvider
	timeout  time.Duration
}

// AskResult is the resolved outcome of one question.
type AskResult struct {
	Answer domain.Answer
	Chunks []domain.RetrievedChunk
}

// NewAskService creates the resolver. A non-positive timeout falls back to
// the 30s default.
func NewAskService(embedder *EmbeddingService, chunks port.ChunkStore, history port.HistoryStore, ai port.AIProvider, timeout time.Duration) *AskService {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &AskService{
		embedder: embedder,
		chunks:   chunks,
		history:  history,
		ai:       ai,
		timeout:  timeout,
	}
}

// Ask answers a question about a repository. Terminal failures are reported
// through the port error taxonomy; an unparseable model response is not a
// failure, it resolves to a fixed fallback answer instead.
func (s *AskService) Ask(ctx context.Context, repositoryID, question string) (*AskResult, error) {
	if strings.TrimSpace(repositoryID) == "" {
		return nil, fmt.Errorf("%w: missing or invalid repositoryId", port.ErrInvalidInput)
	}
	if len(strings.TrimSpace(question)) < minQuestionLength {
		return nil, fmt.Errorf("%w: question too short or missing", port.ErrInvalidInput)
	}

	slog.Info("ask", "repository_id", repositoryID, "question", question)

	questionVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunks.SearchSimilar(ctx, repositoryID, questionVector, retrieveTopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrRetrieval, err)
	}
	if len(chunks) == 0 {
		return nil, port.ErrNoRelevantCode
	}

	raw, err := s.generate(ctx, BuildPrompt(question, chunks))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrGeneration, err)
	}

	answer := s.resolveAnswer(ctx, question, chunks, raw)

	// Persistence is a separate outcome from the response: failures here are
	// logged and swallowed, never surfaced to the caller.
	s.persist(ctx, repositoryID, question, answer, chunks)

	return &AskResult{Answer: answer, Chunks: chunks}, nil
}

// generate calls the model with the resolver's timeout applied.
func (s *AskService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.ai.Chat(ctx, systemPrompt, prompt)
}

// resolveAnswer applies the parse ladder to the raw model response: direct
// JSON parse, brace-delimited substring, one retry with the strict prompt,
// then the fixed fallback answer. It never fails.
func (s *AskService) resolveAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk, raw string) domain.Answer {
	if answer, ok := parseAnswer(raw); ok {
		return answer
	}

	retryRaw, err := s.generate(ctx, BuildStrictPrompt(question, chunks))
	if err == nil {
		if answer, ok := parseAnswer(retryRaw); ok {
			return answer
		}
	}

	slog.Warn("model returned invalid format after retry")
	return domain.Answer{Text: fallbackAnswerText, References: []domain.Reference{}}
}

// parseAnswer tries the raw text as JSON directly, then the substring from
// the first '{' to the last '}' (models often wrap JSON in prose or fences).
func parseAnswer(raw string) (domain.Answer, bool) {
	if answer, ok := tryParseJSON(raw); ok {
		return answer, true
	}
	if sub, ok := extractJSONObject(raw); ok {
		return tryParseJSON(sub)
	}
	return domain.Answer{}, false
}

// tryParseJSON accepts text only if it is a JSON object with a string
// "answer" field and a present "references" key. References of any other
// shape than a list of citations degrade to an empty list.
func tryParseJSON(text string) (domain.Answer, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return domain.Answer{}, false
	}

	rawAnswer, ok := fields["answer"]
	if !ok {
		return domain.Answer{}, false
	}
	var answerText string
	if err := json.Unmarshal(rawAnswer, &answerText); err != nil {
		return domain.Answer{}, false
	}

	rawReferences, ok := fields["references"]
	if !ok {
		return domain.Answer{}, false
	}
	var references []domain.Reference
	if err := json.Unmarshal(rawReferences, &references); err != nil || references == nil {
		references = []domain.Reference{}
	}

	return domain.Answer{Text: answerText, References: references}, true
}

func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func (s *AskService) persist(ctx context.Context, repositoryID, question string, answer domain.Answer, chunks []domain.RetrievedChunk) {
	snippets := make([]domain.Snippet, len(chunks))
	for i, chunk := range chunks {
		snippets[i] = domain.Snippet{
			File:      chunk.FilePath,
			StartLine: chunk.StartLine,
			EndLine:   chunk.EndLine,
			Code:      chunk.Content,
			Highlight: [2]int{chunk.StartLine, chunk.EndLine},
		}
	}

	rec := &domain.QnARecord{
		RepositoryID: repositoryID,
		Question:     question,
		Answer:       answer.Text,
		References:   answer.References,
		Snippets:     snippets,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		slog.Warn("failed to save qna history", "repository_id", repositoryID, "error", err)
	}
}
