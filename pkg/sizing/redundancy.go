package sizing

// ValidateRedundancy simulates the loss of failedNodes nodes and checks that
// the survivors still carry the adjusted demand within the thresholds.
func ValidateRedundancy(req NodeRequirements, capacity CapacityModelResult, failedNodes int, cfg SizingConfig) RedundancyValidation {
	failedNodes = max(0, failedNodes)
	total := max(0, req.TotalNodes)

	v := RedundancyValidation{
		TotalNodes:     total,
		FailedNodes:    failedNodes,
		SurvivingNodes: max(0, total-failedNodes),
	}

	v.CPU = utilization(float64(req.TotalVCPU), float64(capacity.UsableVCPU), total, v.SurvivingNodes, cfg.EvictionThresholdPercent)
	v.Memory = utilization(float64(req.TotalMemoryGB), float64(capacity.UsableMemoryGB), total, v.SurvivingNodes, cfg.EvictionThresholdPercent)
	v.Storage = utilization(req.TotalStorageGB, float64(capacity.UsableStorageGB), total, v.SurvivingNodes, cfg.StorageOperationalThresholdPercent)

	// Storage is not provisioned locally on a diskless profile.
	if capacity.UsableStorageGB == 0 {
		v.Storage.Passes = true
	}

	v.QuorumPasses = v.SurvivingNodes >= MinimumQuorumNodes
	v.AllPass = v.CPU.Passes && v.Memory.Passes && v.Storage.Passes && v.QuorumPasses

	return v
}

func utilization(demand, usable float64, total, surviving int, threshold float64) ResourceUtilization {
	u := ResourceUtilization{
		ThresholdPercent: threshold,
		HealthyPercent:   percentOf(safeDiv(demand, float64(total)), usable),
	}

	if surviving == 0 {
		u.Unsatisfiable = true
		return u
	}

	u.AfterFailurePercent = percentOf(demand/float64(surviving), usable)
	u.Passes = u.AfterFailurePercent <= threshold
	return u
}

func percentOf(load, capacity float64) float64 {
	return safeDiv(load*100, capacity)
}

// ValidateFailureSweep runs the validator for every failure count from zero
// to maxFailures inclusive.
func ValidateFailureSweep(req NodeRequirements, capacity CapacityModelResult, maxFailures int, cfg SizingConfig) []RedundancyValidation {
	maxFailures = max(0, maxFailures)
	sweep := make([]RedundancyValidation, 0, maxFailures+1)
	for failed := 0; failed <= maxFailures; failed++ {
		sweep = append(sweep, ValidateRedundancy(req, capacity, failed, cfg))
	}
	return sweep
}

// MaxToleratedFailures returns the largest number of simultaneous failures
// the cluster survives, or -1 when even the healthy cluster fails.
// Losing more nodes never lowers utilization, so the first failing count ends
// the search.
func MaxToleratedFailures(req NodeRequirements, capacity CapacityModelResult, cfg SizingConfig) int {
	tolerated := -1
	for failed := 0; failed <= req.TotalNodes; failed++ {
		if !ValidateRedundancy(req, capacity, failed, cfg).AllPass {
			break
		}
		tolerated = failed
	}
	return tolerated
}
