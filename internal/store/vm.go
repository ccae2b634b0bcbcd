package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/migration-sizer/internal/models"
)

var vmColumns = []string{
	"id",
	"name",
	"power_state",
	"template",
	"excluded",
	"cluster",
	"datacenter",
	"cpus",
	"memory",
	"provisioned",
	"in_use",
	"disk_capacity",
}

type VMStore struct {
	db Transactor
}

func NewVMStore(db Transactor) *VMStore {
	return &VMStore{db: db}
}

// List returns vms with filters, sorting, and pagination.
func (s *VMStore) List(ctx context.Context, opts ...ListOption) ([]models.VM, error) {
	builder := sq.Select(vmColumns...).From("vms")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vms := []models.VM{}
	for rows.Next() {
		var vm models.VM
		err := rows.Scan(
			&vm.ID,
			&vm.Name,
			&vm.PowerState,
			&vm.Template,
			&vm.Excluded,
			&vm.Cluster,
			&vm.Datacenter,
			&vm.CPUs,
			&vm.MemoryMB,
			&vm.ProvisionedMB,
			&vm.InUseMB,
			&vm.DiskCapacityMB,
		)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
	}

	return vms, rows.Err()
}

// Count returns the total number of vms matching the filters.
// Pagination options must not be passed.
func (s *VMStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("vms")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ReplaceAll drops the stored inventory and inserts vms in a single transaction.
func (s *VMStore) ReplaceAll(ctx context.Context, vms []models.VM) error {
	return s.db.WithTx(ctx, func(tx QueryInterceptor) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM vms"); err != nil {
			return err
		}

		for start := 0; start < len(vms); start += insertBatchSize {
			end := min(start+insertBatchSize, len(vms))

			builder := sq.Insert("vms").Columns(vmColumns...)
			for _, vm := range vms[start:end] {
				builder = builder.Values(
					vm.ID,
					vm.Name,
					vm.PowerState,
					vm.Template,
					vm.Excluded,
					vm.Cluster,
					vm.Datacenter,
					vm.CPUs,
					vm.MemoryMB,
					vm.ProvisionedMB,
					vm.InUseMB,
					vm.DiskCapacityMB,
				)
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		return nil
	})
}

// SetExcluded flags or unflags the given vms. It returns the number of rows changed.
func (s *VMStore) SetExcluded(ctx context.Context, ids []string, excluded bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sq.Update("vms").
		Set("excluded", excluded).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const insertBatchSize = 500
