package badger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/index"
	"github.com/talentgrid/jobmatch/storage"
)

// Rows written per transaction during a save. Keeps individual
// transactions well under badger's size limits for large corpora.
const saveChunkSize = 128

// Store implements storage.GenerationStore for BadgerDB.
//
// Each save writes a fresh generation under a new sequence number and
// commits the manifest last. A crash mid-save leaves orphaned rows but
// never a loadable half-generation; the previous generation stays intact
// and loadable until the new manifest lands.
type Store struct {
	backend *Backend
	genSeq  *badger.Sequence
	logger  *slog.Logger
}

var _ storage.GenerationStore = (*Store)(nil)

// NewStore creates a generation store on top of the backend.
func NewStore(backend *Backend) (*Store, error) {
	genSeq, err := backend.GetSequence(generationIDSeq)
	if err != nil {
		return nil, err
	}

	return &Store{
		backend: backend,
		genSeq:  genSeq,
		logger:  slog.Default().With("component", "badger-store"),
	}, nil
}

// Close releases the generation sequence. The backend is owned by the
// caller and stays open.
func (s *Store) Close() error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.genSeq.Release()
}

// SaveGeneration persists a complete generation and makes it the current one.
func (s *Store) SaveGeneration(ctx context.Context, gen *storage.Generation) error {
	if err := gen.Validate(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	genID, err := s.genSeq.Next()
	if err != nil {
		return err
	}

	// Remember the previous manifest so its rows can be cleaned up after
	// the swap.
	previous, err := s.readManifest()
	if err != nil && err != storage.ErrNotFound {
		return err
	}

	// Fingerprint first, then rows in chunks.
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeFingerprintKey(genID), storage.MarshalFingerprint(&gen.Fingerprint)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	rows := len(gen.Jobs)
	for start := 0; start < rows; start += saveChunkSize {
		end := start + saveChunkSize
		if end > rows {
			end = rows
		}
		err = s.backend.WithTx(func(tx *badger.Txn) error {
			for row := start; row < end; row++ {
				if err := tx.Set(makeRowKey(jobRowPrefix, genID, row), storage.MarshalJobRecord(&gen.Jobs[row])); err != nil {
					return err
				}
				if err := tx.Set(makeRowKey(vectorRowPrefix, genID, row), storage.MarshalVector(gen.Index.Row(row))); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	// Manifest last: the generation becomes loadable only here.
	manifest := &storage.Manifest{
		Generation: genID,
		Rows:       rows,
		Dim:        gen.Index.Dim(),
		BuiltAt:    gen.BuiltAt,
	}
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(manifestKey), storage.MarshalManifest(manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.logger.Info("generation persisted", "generation", genID, "jobs", rows, "dim", gen.Index.Dim())

	if previous != nil {
		if err := s.dropGeneration(previous.Generation, previous.Rows); err != nil {
			// Orphaned rows are harmless; the manifest no longer points at them.
			s.logger.Warn("failed to clean up previous generation", "generation", previous.Generation, "err", err)
		}
	}

	return nil
}

// LoadGeneration restores the generation the manifest points at.
func (s *Store) LoadGeneration(ctx context.Context) (*storage.Generation, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}

	gen := &storage.Generation{BuiltAt: manifest.BuiltAt}

	flat, err := index.NewFlat(manifest.Dim)
	if err != nil {
		return nil, err
	}

	err = s.backend.WithTx(func(tx *badger.Txn) error {
		fp, err := readValue(tx, makeFingerprintKey(manifest.Generation), storage.UnmarshalFingerprint)
		if err != nil {
			return err
		}
		gen.Fingerprint = *fp

		gen.Jobs = make([]core.JobRecord, 0, manifest.Rows)
		for row := 0; row < manifest.Rows; row++ {
			record, err := readValue(tx, makeRowKey(jobRowPrefix, manifest.Generation, row), storage.UnmarshalJobRecord)
			if err != nil {
				return err
			}
			gen.Jobs = append(gen.Jobs, *record)

			vector, err := readValue(tx, makeRowKey(vectorRowPrefix, manifest.Generation, row), storage.UnmarshalVector)
			if err != nil {
				return err
			}
			if err := flat.Add(vector); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	gen.Index = flat
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("generation loaded", "generation", manifest.Generation,
		"jobs", gen.JobCount(), "model", gen.Fingerprint.ModelName)
	return gen, nil
}

// readManifest reads the current manifest, or storage.ErrNotFound.
func (s *Store) readManifest() (*storage.Manifest, error) {
	var manifest *storage.Manifest
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		manifest, err = readValue(tx, []byte(manifestKey), storage.UnmarshalManifest)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// dropGeneration deletes all artifacts of a superseded generation.
func (s *Store) dropGeneration(gen uint64, rows int) error {
	for start := 0; start < rows; start += saveChunkSize {
		end := start + saveChunkSize
		if end > rows {
			end = rows
		}
		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for row := start; row < end; row++ {
				if err := tx.Delete(makeRowKey(jobRowPrefix, gen, row)); err != nil {
					return err
				}
				if err := tx.Delete(makeRowKey(vectorRowPrefix, gen, row)); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeFingerprintKey(gen)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readValue reads and deserializes a single key within a transaction.
// Returns storage.ErrNotFound if the key does not exist.
func readValue[T any](tx *badger.Txn, key []byte, unmarshal func([]byte) (T, error)) (T, error) {
	var zero T

	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return zero, storage.ErrNotFound
		}
		return zero, err
	}

	var value T
	err = item.Value(func(val []byte) error {
		var err error
		value, err = unmarshal(val)
		return err
	})
	if err != nil {
		return zero, fmt.Errorf("key %q: %w", key, err)
	}
	return value, nil
}
