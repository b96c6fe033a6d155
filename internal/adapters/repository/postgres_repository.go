package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/infrastructure/database"
	"github.com/brightlane/sitecms/internal/ports"
)

// PostgresRepository stores each collection as one JSONB row of the collections table
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new postgres-backed collection repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ ports.CollectionRepository = (*PostgresRepository)(nil)

const (
	seedQuery = `
		INSERT INTO collections (name, data)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (name) DO NOTHING`

	upsertQuery = `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
)

func (r *PostgresRepository) Load(ctx context.Context, name string, defaults []byte) ([]byte, error) {
	var data []byte
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		data, err = loadTx(ctx, tx, name, defaults, false)
		return err
	})
	if err != nil {
		return nil, storageError(name, "read", err)
	}
	return data, nil
}

func (r *PostgresRepository) Save(ctx context.Context, name string, data []byte) error {
	if _, err := r.db.DB.ExecContext(ctx, upsertQuery, name, string(data)); err != nil {
		return storageError(name, "write", err)
	}
	return nil
}

// Mutate locks the collection row for the duration of the transaction
func (r *PostgresRepository) Mutate(ctx context.Context, name string, defaults []byte, fn ports.MutateFunc) error {
	var fnErr error
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		current, err := loadTx(ctx, tx, name, defaults, true)
		if err != nil {
			return storageError(name, "read", err)
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		if _, err := tx.ExecContext(ctx, upsertQuery, name, string(next)); err != nil {
			return storageError(name, "write", err)
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// Stats reports connection pool statistics
func (r *PostgresRepository) Stats() map[string]interface{} {
	return r.db.GetConnectionInfo()
}

func loadTx(ctx context.Context, tx *sqlx.Tx, name string, defaults []byte, forUpdate bool) ([]byte, error) {
	if _, err := tx.ExecContext(ctx, seedQuery, name, string(defaults)); err != nil {
		return nil, fmt.Errorf("seed collection: %w", err)
	}

	query := `SELECT data FROM collections WHERE name = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var data []byte
	if err := tx.GetContext(ctx, &data, query, name); err != nil {
		return nil, fmt.Errorf("select collection: %w", err)
	}
	return data, nil
}

func storageError(name, op string, err error) error {
	if _, ok := err.(*entities.StorageError); ok {
		return err
	}
	return &entities.StorageError{Collection: name, Op: op, Err: err}
}
