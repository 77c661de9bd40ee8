package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
	"github.com/vikas-saini-7/codebase-qna/internal/service"
)

// AskHandler handles the question-answering endpoint.
type AskHandler struct {
	ask *service.AskService
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(ask *service.AskService) *AskHandler {
	return &AskHandler{ask: ask}
}

// Register sets up the ask route.
func (h *AskHandler) Register(router fiber.Router) {
	router.Post("/ask", h.Ask)
}

// Ask answers a question about an indexed repository.
func (h *AskHandler) Ask(c fiber.Ctx) error {
	var body struct {
		RepositoryID string `json:"repositoryId"`
		Question     string `json:"question"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.ask.Ask(c.Context(), body.RepositoryID, body.Question)
	if err != nil {
		return askError(c, err)
	}

	return c.JSON(fiber.Map{
		"answer":           result.Answer.Text,
		"references":       result.Answer.References,
		"retrieved_chunks": toChunkViews(result.Chunks),
	})
}

// askError maps the resolver's error taxonomy onto HTTP statuses. Generation
// failures are 502 to mark an upstream gateway problem; an empty retrieval is
// 404 with an explicit empty-results shape, not a failure.
func askError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, port.ErrNoRelevantCode):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":            "No relevant code found",
			"retrieved_chunks": []any{},
		})
	case errors.Is(err, port.ErrGeneration):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "LLM timeout or error"})
	case errors.Is(err, port.ErrEmbedding):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Embedding failed"})
	case errors.Is(err, port.ErrRetrieval):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Vector retrieval failed"})
	default:
		slog.Error("ask failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected error"})
	}
}

func toChunkViews(chunks []domain.RetrievedChunk) []fiber.Map {
	views := make([]fiber.Map, len(chunks))
	for i, chunk := range chunks {
		views[i] = fiber.Map{
			"file":       chunk.FilePath,
			"start_line": chunk.StartLine,
			"end_line":   chunk.EndLine,
			"content":    chunk.Content,
		}
	}
	return views
}
