package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/migration-sizer/internal/models"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// InventoryStore keeps metadata about the last imported inventory.
type InventoryStore struct {
	db QueryInterceptor
}

func NewInventoryStore(db QueryInterceptor) *InventoryStore {
	return &InventoryStore{db: db}
}

// Get retrieves the inventory metadata.
func (s *InventoryStore) Get(ctx context.Context) (*models.Inventory, error) {
	query, args, err := sq.Select("source", "vm_count", "created_at", "updated_at").
		From("inventory").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var inv models.Inventory
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&inv.Source, &inv.VMCount, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("inventory")
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Save stores or updates the inventory metadata.
func (s *InventoryStore) Save(ctx context.Context, source string, vmCount int) error {
	query, args, err := sq.Insert("inventory").
		Columns("id", "source", "vm_count").
		Values(1, source, vmCount).
		Suffix("ON CONFLICT (id) DO UPDATE SET source = EXCLUDED.source, vm_count = EXCLUDED.vm_count, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
