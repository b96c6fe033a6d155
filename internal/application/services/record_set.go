package services

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/ports"
)

// MutationRecorder counts applied collection mutations
type MutationRecorder interface {
	CountMutation(collection, op string)
}

type noopRecorder struct{}

func (noopRecorder) CountMutation(string, string) {}

// recordSet is the typed view of one named collection in a repository.
// Records are exchanged with the repository as a pretty-printed JSON array.
type recordSet[T any] struct {
	name     string
	repo     ports.CollectionRepository
	defaults func() []T
}

func (c *recordSet[T]) load(ctx context.Context) ([]T, error) {
	defaults, err := encodeRecords(c.defaults())
	if err != nil {
		return nil, &entities.StorageError{Collection: c.name, Op: "encode", Err: err}
	}

	data, err := c.repo.Load(ctx, c.name, defaults)
	if err != nil {
		return nil, err
	}
	return c.decode(data)
}

// mutate applies fn to the current records under the repository's exclusive
// access and persists the result. An error from fn leaves the collection untouched.
func (c *recordSet[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	defaults, err := encodeRecords(c.defaults())
	if err != nil {
		return &entities.StorageError{Collection: c.name, Op: "encode", Err: err}
	}

	return c.repo.Mutate(ctx, c.name, defaults, func(current []byte) ([]byte, error) {
		records, err := c.decode(current)
		if err != nil {
			return nil, err
		}

		next, err := fn(records)
		if err != nil {
			return nil, err
		}

		data, err := encodeRecords(next)
		if err != nil {
			return nil, &entities.StorageError{Collection: c.name, Op: "encode", Err: err}
		}
		return data, nil
	})
}

func (c *recordSet[T]) decode(data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &entities.StorageError{Collection: c.name, Op: "decode", Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func encodeRecords[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
