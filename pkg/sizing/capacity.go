package sizing

// CalculateCapacity converts one node profile into its usable capacity per
// resource. Negative inputs are clamped to zero and a replication factor
// below one is treated as one, so the result is always defined.
func CalculateCapacity(profile NodeProfile, reservation Reservation, cfg SizingConfig) CapacityModelResult {
	res := CapacityModelResult{Reservation: reservation}

	res.AvailableCores = nonNegative(float64(profile.PhysicalCores) - reservation.CPUCores)
	res.EffectiveCores = res.AvailableCores
	if cfg.HyperthreadingEnabled {
		res.EffectiveCores = res.AvailableCores * nonNegative(cfg.HyperthreadingMultiplier)
	}
	res.UsableVCPU = floorInt(res.EffectiveCores * cfg.CPUOvercommitRatio)

	res.AvailableMemoryGB = nonNegative(profile.MemoryGB - reservation.MemoryGB)
	res.UsableMemoryGB = floorInt(res.AvailableMemoryGB * cfg.MemoryOvercommitRatio)

	if profile.HasLocalStorage() {
		res.RawStorageGB = float64(profile.FlashDeviceCount) * profile.FlashDeviceCapacityGB
	}

	replicas := float64(max(1, cfg.ReplicationFactor))
	res.StorageEfficiency = (1 / replicas) * nonNegative(1-cfg.StorageOverheadFraction)
	res.MaxUsableStorageGB = floorInt(res.RawStorageGB * res.StorageEfficiency)
	res.UsableStorageGB = floorInt(float64(res.MaxUsableStorageGB) * cfg.OperationalCapacityFraction)

	return res
}
