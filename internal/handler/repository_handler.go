package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/vikas-saini-7/codebase-qna/internal/port"
)

// RepositoryHandler handles repository deletion.
type RepositoryHandler struct {
	repos port.RepositoryStore
}

// NewRepositoryHandler creates a new repository handler.
func NewRepositoryHandler(repos port.RepositoryStore) *RepositoryHandler {
	return &RepositoryHandler{repos: repos}
}

// Register sets up repository routes.
func (h *RepositoryHandler) Register(router fiber.Router) {
	router.Delete("/repository", h.Delete)
}

// Delete removes a repository and cascades to its chunks and Q&A history.
func (h *RepositoryHandler) Delete(c fiber.Ctx) error {
	var body struct {
		RepositoryID string `json:"repositoryId"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.RepositoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid repositoryId"})
	}

	if err := h.repos.Delete(c.Context(), body.RepositoryID); err != nil {
		if errors.Is(err, port.ErrRepoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "repository not found"})
		}
		slog.Error("delete repository failed", "repository_id", body.RepositoryID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
