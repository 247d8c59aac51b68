package indexer

import "errors"

var (
	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrModelNameRequired is returned when the embedding model name is empty.
	ErrModelNameRequired = errors.New("embedding model name required")

	// ErrEmbeddingMismatch indicates the embedder returned a different
	// number of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding result mismatch")

	// ErrEmptyEmbedding indicates the embedder returned an empty vector.
	ErrEmptyEmbedding = errors.New("embedder returned empty vector")
)
