package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/storage"
)

// DatasetRepository implements storage.DatasetRepository for BadgerDB.
type DatasetRepository struct {
	backend *Backend
}

var _ storage.DatasetRepository = (*DatasetRepository)(nil)

// NewDatasetRepository creates a new DatasetRepository.
func NewDatasetRepository(backend *Backend) *DatasetRepository {
	return &DatasetRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *DatasetRepository) Close() error {
	return nil
}

// PutDataset stores a dataset under a name.
func (r *DatasetRepository) PutDataset(ctx context.Context, name string, dataset *core.InstructDataset) error {
	if r.backend.IsClosed() {
		return storage.ErrClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalDataset(dataset)
		if err != nil {
			return err
		}
		if err := tx.Set(makeDatasetKey(name), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDataset retrieves a dataset by name.
func (r *DatasetRepository) GetDataset(ctx context.Context, name string) (*core.InstructDataset, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrClosed
	}

	var dataset *core.InstructDataset
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDatasetKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			dataset, err = storage.UnmarshalDataset(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return dataset, nil
}
