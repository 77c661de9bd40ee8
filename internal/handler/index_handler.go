package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/vikas-saini-7/codebase-qna/internal/port"
	"github.com/vikas-saini-7/codebase-qna/internal/service"
)

// maxUploadSize caps uploaded ZIP archives at 100MB.
const maxUploadSize = 100 << 20

// IndexHandler handles repository ingestion from ZIP uploads and GitHub URLs.
type IndexHandler struct {
	ingest *service.IngestService
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(ingest *service.IngestService) *IndexHandler {
	return &IndexHandler{ingest: ingest}
}

// Register sets up the index route.
func (h *IndexHandler) Register(router fiber.Router) {
	router.Post("/index", h.Index)
}

// Index ingests a codebase. Accepts multipart/form-data with a "file" ZIP
// field, or a JSON body with a githubUrl.
func (h *IndexHandler) Index(c fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		return h.indexZip(c)
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		return h.indexGitHub(c)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request. Use multipart/form-data for ZIP or JSON for GitHub URL.",
		})
	}
}

func (h *IndexHandler) indexZip(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file field in form-data"})
	}
	if !strings.HasSuffix(fileHeader.Filename, ".zip") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file must be a .zip archive"})
	}
	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded ZIP exceeds 100MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("open upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read upload"})
	}
	defer file.Close()

	summary, err := h.ingest.IndexZip(c.Context(), fileHeader.Filename, file)
	if err != nil {
		slog.Error("zip indexing failed", "file", fileHeader.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

func (h *IndexHandler) indexGitHub(c fiber.Ctx) error {
	var body struct {
		GitHubURL string `json:"githubUrl"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if body.GitHubURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing githubUrl in request body"})
	}

	summary, err := h.ingest.IndexGitHub(c.Context(), body.GitHubURL)
	if err != nil {
		if errors.Is(err, port.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		slog.Error("github indexing failed", "url", body.GitHubURL, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}
