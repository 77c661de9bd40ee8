package port

import "errors"

// Sentinel errors used across ports. Handlers map these to HTTP statuses:
// invalid input -> 400, no relevant code -> 404, generation -> 502,
// everything else -> 500.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmbedding      = errors.New("embedding failed")
	ErrRetrieval      = errors.New("vector retrieval failed")
	ErrNoRelevantCode = errors.New("no relevant code found")
	ErrGeneration     = errors.New("llm timeout or error")
	ErrRepoNotFound   = errors.New("repository not found")
)
