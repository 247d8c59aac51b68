package search

import "errors"

var (
	// ErrNoIndex is returned when searching before an index has been
	// built or loaded. A precondition failure, reported to the caller
	// and never retried internally.
	ErrNoIndex = errors.New("index not built")

	// ErrSourceRequired is returned when a generation source is not provided.
	ErrSourceRequired = errors.New("generation source required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
