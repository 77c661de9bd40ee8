package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// HistoryHandler serves and deletes stored Q&A history.
type HistoryHandler struct {
	history port.HistoryStore
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(history port.HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Register sets up history routes.
func (h *HistoryHandler) Register(router fiber.Router) {
	router.Post("/history", h.List)
	router.Delete("/history", h.Delete)
}

// List returns up to the 10 most recent Q&A records for a repository,
// newest first.
func (h *HistoryHandler) List(c fiber.Ctx) error {
	var body struct {
		RepositoryID string `json:"repositoryId"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.RepositoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing repositoryId"})
	}

	records, err := h.history.List(c.Context(), body.RepositoryID)
	if err != nil {
		slog.Error("list history failed", "repository_id", body.RepositoryID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if records == nil {
		records = []domain.QnARecord{}
	}

	return c.JSON(fiber.Map{"history": records})
}

// Delete removes exactly one record by id.
func (h *HistoryHandler) Delete(c fiber.Ctx) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing id"})
	}

	if err := h.history.Delete(c.Context(), body.ID); err != nil {
		slog.Error("delete history failed", "id", body.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
