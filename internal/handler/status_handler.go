package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
)

// DependencyCheck verifies one external dependency is reachable.
type DependencyCheck func(ctx context.Context) error

// StatusHandler reports the health of the service's dependencies.
type StatusHandler struct {
	database DependencyCheck
	vector   DependencyCheck
	llm      DependencyCheck
}

// NewStatusHandler creates a status handler from per-dependency checks.
func NewStatusHandler(database, vector, llm DependencyCheck) *StatusHandler {
	return &StatusHandler{database: database, vector: vector, llm: llm}
}

// Register sets up the status route.
func (h *StatusHandler) Register(router fiber.Router) {
	router.Get("/status", h.Status)
}

type checkResult struct {
	Status string  `json:"status"`
	Error  *string `json:"error"`
}

// Status runs all dependency checks. Overall health is "degraded" if any
// check fails, and the HTTP status is 500 in that case.
func (h *StatusHandler) Status(c fiber.Ctx) error {
	ctx := c.Context()

	database := runCheck(ctx, "database", h.database)
	vector := runCheck(ctx, "vector", h.vector)
	llm := runCheck(ctx, "llm", h.llm)

	overall := "healthy"
	httpStatus := fiber.StatusOK
	if database.Status != "healthy" || vector.Status != "healthy" || llm.Status != "healthy" {
		overall = "degraded"
		httpStatus = fiber.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"database":  database,
		"vector":    vector,
		"llm":       llm,
		"overall":   overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func runCheck(ctx context.Context, name string, check DependencyCheck) checkResult {
	if err := check(ctx); err != nil {
		slog.Error("dependency check failed", "dependency", name, "error", err)
		msg := err.Error()
		return checkResult{Status: "unhealthy", Error: &msg}
	}
	return checkResult{Status: "healthy"}
}
