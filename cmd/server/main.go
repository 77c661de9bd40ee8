package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/vikas-saini-7/codebase-qna/internal/adapter/ai"
	"github.com/vikas-saini-7/codebase-qna/internal/adapter/github"
	"github.com/vikas-saini-7/codebase-qna/internal/adapter/store"
	"github.com/vikas-saini-7/codebase-qna/internal/handler"
	"github.com/vikas-saini-7/codebase-qna/internal/service"
	"github.com/vikas-saini-7/codebase-qna/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	cfg := config.Load()

	slog.Info("starting codebase-qna",
		"port", cfg.Port,
		"ollama_embed", cfg.OllamaEmbedURL,
		"ollama_chat", cfg.OllamaChatURL,
		"embedding_dimension", cfg.EmbeddingDimension,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	vectorStore := store.NewVectorStore(pgStore, cfg.EmbeddingDimension)
	historyStore := store.NewHistoryStore(pgStore)

	// ── Adapters ─────────────────────────────────────────────────────────
	ollamaAI := ai.NewOllamaProvider(
		ai.OllamaEndpointConfig{
			BaseURL: cfg.OllamaEmbedURL,
			Model:   cfg.OllamaEmbedModel,
			Token:   cfg.OllamaEmbedToken,
		},
		ai.OllamaEndpointConfig{
			BaseURL: cfg.OllamaChatURL,
			Model:   cfg.OllamaChatModel,
			Token:   cfg.OllamaChatToken,
		},
	)
	githubClient := github.NewClient()

	// ── Services ─────────────────────────────────────────────────────────
	embedder := service.NewEmbeddingService(ollamaAI, cfg.EmbeddingDimension, cfg.EmbedConcurrency)
	askService := service.NewAskService(embedder, vectorStore, historyStore, ollamaAI, cfg.GenerateTimeout)
	ingestService := service.NewIngestService(pgStore, vectorStore, embedder, githubClient)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    110 << 20, // leave headroom over the 100MB ZIP cap
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
	}))

	// ── Routes ───────────────────────────────────────────────────────────
	handler.NewAskHandler(askService).Register(app)
	handler.NewIndexHandler(ingestService).Register(app)
	handler.NewHistoryHandler(historyStore).Register(app)
	handler.NewRepositoryHandler(pgStore).Register(app)
	handler.NewStatusHandler(pgStore.Ping, vectorStore.HealthCheck, ollamaAI.Ping).Register(app)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
