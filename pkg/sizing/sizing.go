package sizing

import (
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// ComputeSizing runs the capacity model and the requirement calculator for
// one profile. Without a profile nothing is computed; with an empty demand
// only the capacity is returned, so that a zero demand is never presented as
// a valid small cluster. The same holds when a dimension saturates.
func ComputeSizing(demand ResourceDemand, profile *NodeProfile, cfg SizingConfig) (*CapacityModelResult, *NodeRequirements, error) {
	if profile == nil {
		return nil, nil, srvErrors.NewNoProfileSelectedError()
	}

	capacity := CalculateCapacity(*profile, InfrastructureReservation(*profile), cfg)

	if demand.VMCount <= 0 {
		return &capacity, nil, srvErrors.NewEmptyInventoryError()
	}

	req := CalculateRequirements(demand, capacity, cfg)
	if r := saturatedResource(req); r != ResourceNone {
		return &capacity, nil, srvErrors.NewUnsatisfiableDemandError(string(r))
	}

	return &capacity, &req, nil
}

// saturatedResource returns the first dimension whose count hit MaxNodeCount.
func saturatedResource(req NodeRequirements) ResourceKind {
	switch {
	case req.TotalVCPU >= MaxNodeCount, req.NodesForCPUAtThreshold >= MaxNodeCount:
		return ResourceCPU
	case req.TotalMemoryGB >= MaxNodeCount, req.NodesForMemoryAtThreshold >= MaxNodeCount:
		return ResourceMemory
	case req.NodesForStorageAtThreshold >= MaxNodeCount:
		return ResourceStorage
	default:
		return ResourceNone
	}
}
