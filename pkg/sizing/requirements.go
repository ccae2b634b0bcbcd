package sizing

import (
	"fmt"
	"math"
)

// CalculateRequirements derives the node count from the adjusted demand and
// the per-node capacity.
func CalculateRequirements(demand ResourceDemand, capacity CapacityModelResult, cfg SizingConfig) NodeRequirements {
	vmCount := float64(max(0, demand.VMCount))
	baseVCPU := float64(max(0, demand.TotalVCPU))
	baseMemory := nonNegative(demand.TotalMemoryGB)

	req := NodeRequirements{
		TotalVCPU:        ceilTolerant(baseVCPU + vmCount*cfg.CPUFixedOverheadPerVM + baseVCPU*cfg.CPUProportionalOverheadPct),
		TotalMemoryGB:    ceilTolerant(baseMemory + vmCount*cfg.MemoryFixedOverheadPerVM + baseMemory*cfg.MemoryProportionalOverheadPct),
		RedundancyBuffer: min(max(0, cfg.NodeRedundancyBuffer), MaxNodeCount),
	}

	// Growth compounds yearly.
	req.StorageGrowthMultiplier = math.Pow(1+cfg.AnnualGrowthRatePercent/100, float64(max(0, cfg.PlanningHorizonYears)))
	req.TotalStorageGB = nonNegative(demand.TotalStorageGB) * req.StorageGrowthMultiplier * (1 + cfg.VirtualizationStorageOverheadPercent/100)

	usableVCPU := float64(capacity.UsableVCPU)
	usableMemory := float64(capacity.UsableMemoryGB)
	usableStorage := float64(capacity.UsableStorageGB)

	req.NodesForCPU = ceilDiv(float64(req.TotalVCPU), usableVCPU)
	req.NodesForMemory = ceilDiv(float64(req.TotalMemoryGB), usableMemory)
	req.NodesForStorage = ceilDiv(req.TotalStorageGB, usableStorage)

	// Storage already keeps its own headroom through the operational
	// fraction, so the eviction threshold only applies to cpu and memory.
	req.NodesForCPUAtThreshold = ceilDiv(float64(req.TotalVCPU), usableVCPU*cfg.EvictionThresholdPercent/100)
	req.NodesForMemoryAtThreshold = ceilDiv(float64(req.TotalMemoryGB), usableMemory*cfg.EvictionThresholdPercent/100)
	req.NodesForStorageAtThreshold = req.NodesForStorage

	req.MinSurvivingNodes = max(MinimumQuorumNodes, req.NodesForCPUAtThreshold, req.NodesForMemoryAtThreshold, req.NodesForStorageAtThreshold)
	req.PreRoundingTotal = req.MinSurvivingNodes + req.RedundancyBuffer
	req.TotalNodes = ceilTolerant(float64(req.PreRoundingTotal)/RackGroupSize) * RackGroupSize

	req.LimitingFactor = limitingFactor(req, capacity)

	return req
}

// limitingFactor picks the dimension with the largest threshold node count.
// Evaluation order is cpu, then memory on >=, then storage on >=, so memory
// wins ties with cpu and storage wins ties with both.
func limitingFactor(req NodeRequirements, capacity CapacityModelResult) ResourceKind {
	limiting := ResourceNone
	highest := -1

	if capacity.UsableVCPU > 0 {
		limiting, highest = ResourceCPU, req.NodesForCPUAtThreshold
	}
	if capacity.UsableMemoryGB > 0 && req.NodesForMemoryAtThreshold >= highest {
		limiting, highest = ResourceMemory, req.NodesForMemoryAtThreshold
	}
	if capacity.UsableStorageGB > 0 && req.NodesForStorageAtThreshold >= highest {
		limiting = ResourceStorage
	}

	return limiting
}

// Summary renders the decision as one human readable line.
func (r NodeRequirements) Summary() string {
	if r.LimitingFactor == ResourceNone {
		return fmt.Sprintf("%d nodes (quorum minimum plus %d buffer); no resource constrains the cluster.", r.TotalNodes, r.RedundancyBuffer)
	}
	return fmt.Sprintf("%d nodes; %s is the limiting resource at %d nodes under the eviction threshold, plus %d buffer, rounded to groups of %d.",
		r.TotalNodes, r.LimitingFactor, r.limitingCount(), r.RedundancyBuffer, RackGroupSize)
}

func (r NodeRequirements) limitingCount() int {
	switch r.LimitingFactor {
	case ResourceCPU:
		return r.NodesForCPUAtThreshold
	case ResourceMemory:
		return r.NodesForMemoryAtThreshold
	case ResourceStorage:
		return r.NodesForStorageAtThreshold
	default:
		return 0
	}
}
