package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/catalog"
	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/store"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
	"github.com/kubev2v/migration-sizer/pkg/filter"
	"github.com/kubev2v/migration-sizer/pkg/scheduler"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

type SizingService struct {
	store     *store.Store
	catalog   *catalog.Catalog
	scheduler *scheduler.Scheduler[models.SizingResult]
	cache     *resultCache
	logger    *zap.SugaredLogger
}

func NewSizingService(st *store.Store, cat *catalog.Catalog, sched *scheduler.Scheduler[models.SizingResult]) *SizingService {
	return &SizingService{
		store:     st,
		catalog:   cat,
		scheduler: sched,
		cache:     newResultCache(),
		logger:    zap.S().Named("sizing_service"),
	}
}

// Invalidate drops memoized results after the inventory or the exclusion set changed.
func (s *SizingService) Invalidate() {
	s.cache.clear()
}

// Size runs the full pipeline for req.Profile and stores the outcome as a scenario.
func (s *SizingService) Size(ctx context.Context, req models.SizingRequest) (*models.Scenario, error) {
	if req.Profile == "" {
		return nil, srvErrors.NewNoProfileSelectedError()
	}
	if err := config.ValidateSizing(req.Config); err != nil {
		return nil, err
	}

	profile, err := s.catalog.Get(req.Profile)
	if err != nil {
		return nil, err
	}

	demand, err := s.Demand(ctx, req.Scope, req.Config.StorageMetric)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluate(demand, profile, req.Config, req.FailureCount())
	if err != nil {
		return nil, err
	}

	scenario := models.Scenario{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Scope:     req.Scope,
		Config:    req.Config,
		Result:    result,
	}
	if err := s.store.Scenario().Create(ctx, scenario); err != nil {
		return nil, err
	}

	s.logger.Infow("sizing scenario created", "id", scenario.ID, "profile", profile.Name, "nodes", result.Requirements.TotalNodes, "limiting_factor", result.Requirements.LimitingFactor)

	return &scenario, nil
}

// Compare sizes the same demand on every named profile, or on the whole
// catalog when names is empty. Results keep the order of names.
func (s *SizingService) Compare(ctx context.Context, req models.SizingRequest, names []string) ([]models.SizingResult, error) {
	if err := config.ValidateSizing(req.Config); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		names = s.catalog.Names()
	}
	profiles := make([]sizing.NodeProfile, 0, len(names))
	for _, name := range names {
		p, err := s.catalog.Get(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	demand, err := s.Demand(ctx, req.Scope, req.Config.StorageMetric)
	if err != nil {
		return nil, err
	}
	if demand.VMCount == 0 {
		return nil, srvErrors.NewEmptyInventoryError()
	}

	futures := make([]*scheduler.Future[models.SizingResult], 0, len(profiles))
	for _, p := range profiles {
		futures = append(futures, s.scheduler.AddWork(func(ctx context.Context) (models.SizingResult, error) {
			return s.evaluate(demand, p, req.Config, req.FailureCount())
		}))
	}

	results := make([]models.SizingResult, 0, len(futures))
	var errs []error
	for _, f := range futures {
		r, err := f.Wait(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return results, nil
}

// Demand aggregates the eligible vms, optionally narrowed by a scope expression.
func (s *SizingService) Demand(ctx context.Context, scope string, metric sizing.StorageMetric) (sizing.ResourceDemand, error) {
	cond, err := filter.ToSqlizer(scope)
	if err != nil {
		return sizing.ResourceDemand{}, err
	}

	vms, err := s.store.VM().List(ctx, store.Eligible(), store.ByScope(cond))
	if err != nil {
		return sizing.ResourceDemand{}, err
	}

	return sizing.AggregateDemand(models.ToSizingVMs(vms), metric), nil
}

func (s *SizingService) GetScenario(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	return s.store.Scenario().Get(ctx, id)
}

func (s *SizingService) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	return s.store.Scenario().List(ctx)
}

func (s *SizingService) evaluate(demand sizing.ResourceDemand, profile sizing.NodeProfile, cfg sizing.SizingConfig, failed int) (models.SizingResult, error) {
	key := cacheKey{demand: demand, profile: profile, config: cfg, failed: failed}
	if r, ok := s.cache.get(key); ok {
		return r, nil
	}

	capacity, req, err := sizing.ComputeSizing(demand, &profile, cfg)
	if err != nil {
		return models.SizingResult{}, err
	}

	sweepTo := min(req.TotalNodes, max(failed, cfg.NodeRedundancyBuffer)+1)

	result := models.SizingResult{
		Profile:              profile,
		Demand:               demand,
		Capacity:             *capacity,
		Requirements:         *req,
		Validation:           sizing.ValidateRedundancy(*req, *capacity, failed, cfg),
		Sweep:                sizing.ValidateFailureSweep(*req, *capacity, sweepTo, cfg),
		MaxToleratedFailures: sizing.MaxToleratedFailures(*req, *capacity, cfg),
		Summary:              req.Summary(),
	}

	s.cache.put(key, result)
	return result, nil
}
