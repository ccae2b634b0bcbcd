package sizing

const mibPerGiB = 1024.0

// AggregateDemand reduces the eligible VMs to demand totals. The caller is
// trusted to have dropped powered-off, template and excluded VMs already.
// An unknown metric falls back to provisioned storage.
func AggregateDemand(vms []VM, metric StorageMetric) ResourceDemand {
	if _, err := ParseStorageMetric(string(metric)); err != nil {
		metric = StorageMetricProvisioned
	}

	demand := ResourceDemand{StorageMetric: metric}
	var memoryMB, storageMB float64
	for _, vm := range vms {
		demand.TotalVCPU += max(0, vm.CPUs)
		memoryMB += nonNegative(float64(vm.MemoryMB))
		storageMB += nonNegative(float64(storageOf(vm, metric)))
		demand.VMCount++
	}

	demand.TotalMemoryGB = memoryMB / mibPerGiB
	demand.TotalStorageGB = storageMB / mibPerGiB
	return demand
}

func storageOf(vm VM, metric StorageMetric) int64 {
	switch metric {
	case StorageMetricInUse:
		return vm.InUseMB
	case StorageMetricDiskCapacity:
		return vm.DiskCapacityMB
	default:
		return vm.ProvisionedMB
	}
}
