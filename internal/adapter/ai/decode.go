package ai

import (
	"encoding/json"
	"errors"
)

// Embedding servers are not consistent about the payload shape they return.
// The variants seen in the wild, each with its own decoder:
//
//	{"embeddings": [[...]]}        batch-style response (Ollama /api/embed)
//	{"embedding": [...]}           single-vector response (legacy endpoint)
//	{"data": [...], "dims": [...]} tensor-like object
//	[[...]] or [...]               bare nested / flat array
//
// decodeEmbedding tries each in order and returns the first match.
// Anything else is rejected as malformed.
func decodeEmbedding(body []byte) ([]float32, error) {
	decoders := []func([]byte) ([]float32, bool){
		decodeBatchObject,
		decodeSingleObject,
		decodeTensorObject,
		decodeNestedArray,
		decodeFlatArray,
	}
	for _, decode := range decoders {
		if vector, ok := decode(body); ok {
			return vector, nil
		}
	}
	return nil, errors.New("unexpected embedding payload shape")
}

func decodeBatchObject(body []byte) ([]float32, bool) {
	var resp struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, false
	}
	return resp.Embeddings[0], true
}

func decodeSingleObject(body []byte) ([]float32, bool) {
	var resp struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false
	}
	if len(resp.Embedding) == 0 {
		return nil, false
	}
	return resp.Embedding, true
}

func decodeTensorObject(body []byte) ([]float32, bool) {
	var resp struct {
		Data []float32 `json:"data"`
		Dims []int     `json:"dims"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false
	}
	if len(resp.Data) == 0 || len(resp.Dims) == 0 {
		return nil, false
	}
	return resp.Data, true
}

func decodeNestedArray(body []byte) ([]float32, bool) {
	var nested [][]float32
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, false
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, false
	}
	return nested[0], true
}

func decodeFlatArray(body []byte) ([]float32, bool) {
	var flat []float32
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, false
	}
	if len(flat) == 0 {
		return nil, false
	}
	return flat, true
}
