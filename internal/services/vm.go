package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/pkg/filter"
)

type VMService struct {
	store       *store.Store
	invalidator Invalidator
}

func NewVMService(st *store.Store, invalidator Invalidator) *VMService {
	return &VMService{store: st, invalidator: invalidator}
}

type VMListParams struct {
	Clusters []string
	// Scope is a filter expression, see package filter.
	Scope        string
	EligibleOnly bool
	Limit        uint64
	Offset       uint64
}

// List returns one page of vms and the total number matching the filters.
func (s *VMService) List(ctx context.Context, params VMListParams) ([]models.VM, int, error) {
	opts, err := s.buildFilterOptions(params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.store.VM().Count(ctx, opts...)
	if err != nil {
		return nil, 0, err
	}

	opts = append(opts, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	vms, err := s.store.VM().List(ctx, opts...)
	if err != nil {
		return nil, 0, err
	}

	return vms, total, nil
}

// SetExcluded adds or removes vms from the exclusion set.
func (s *VMService) SetExcluded(ctx context.Context, ids []string, excluded bool) (int64, error) {
	changed, err := s.store.VM().SetExcluded(ctx, ids, excluded)
	if err != nil {
		return 0, err
	}

	if changed > 0 && s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	zap.S().Named("vm_service").Debugw("exclusions updated", "requested", len(ids), "changed", changed, "excluded", excluded)

	return changed, nil
}

func (s *VMService) buildFilterOptions(params VMListParams) ([]store.ListOption, error) {
	var opts []store.ListOption

	if len(params.Clusters) > 0 {
		opts = append(opts, store.ByClusters(params.Clusters...))
	}
	if params.EligibleOnly {
		opts = append(opts, store.Eligible())
	}

	scope, err := filter.ToSqlizer(params.Scope)
	if err != nil {
		return nil, err
	}
	opts = append(opts, store.ByScope(scope))

	return opts, nil
}
