package storage

import "context"

// GenerationStore persists and restores complete index generations.
// Implementations must be thread-safe and support concurrent access.
type GenerationStore interface {
	// SaveGeneration persists a complete generation: fingerprint, metadata
	// rows, and vectors. The write is all-or-nothing; a generation that is
	// only partially persisted must never become loadable.
	SaveGeneration(ctx context.Context, gen *Generation) error

	// LoadGeneration restores the most recently saved generation.
	// Returns ErrNotFound if no generation has ever been persisted.
	LoadGeneration(ctx context.Context) (*Generation, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
