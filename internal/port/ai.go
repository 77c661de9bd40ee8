package port

import "context"

// AIProvider abstracts the AI backend for embeddings and chat completions.
// Implementations can target Ollama, OpenAI, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the chat model being used.
	ModelName() string

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Chat sends a prompt and returns the raw model response text.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Ping verifies the model backend is reachable.
	Ping(ctx context.Context) error
}
