package sizing

import "fmt"

// ResourceKind names one sizing dimension.
type ResourceKind string

const (
	ResourceNone    ResourceKind = ""
	ResourceCPU     ResourceKind = "cpu"
	ResourceMemory  ResourceKind = "memory"
	ResourceStorage ResourceKind = "storage"
)

// StorageMetric selects which per-VM disk figure counts as storage demand.
type StorageMetric string

const (
	StorageMetricProvisioned  StorageMetric = "provisioned"
	StorageMetricInUse        StorageMetric = "inUse"
	StorageMetricDiskCapacity StorageMetric = "diskCapacity"
)

func ParseStorageMetric(s string) (StorageMetric, error) {
	switch StorageMetric(s) {
	case StorageMetricProvisioned, StorageMetricInUse, StorageMetricDiskCapacity:
		return StorageMetric(s), nil
	default:
		return "", fmt.Errorf("invalid storage metric: %s", s)
	}
}

// VM is one inventory entry that has already passed the exclusion policy.
type VM struct {
	ID             string
	Name           string
	CPUs           int
	MemoryMB       int64
	ProvisionedMB  int64
	InUseMB        int64
	DiskCapacityMB int64
}

// NodeProfile describes the hardware of one candidate worker node.
type NodeProfile struct {
	Name                  string  `json:"name"`
	PhysicalCores         int     `json:"physicalCores"`
	Threads               int     `json:"threads"`
	MemoryGB              float64 `json:"memoryGB"`
	FlashDeviceCount      int     `json:"flashDeviceCount"`
	FlashDeviceCapacityGB float64 `json:"flashDeviceCapacityGB"`
	// SupportsBareMetal and SupportsHostedControlPlane are informational;
	// sizing does not branch on them.
	SupportsBareMetal          bool `json:"supportsBareMetal"`
	SupportsHostedControlPlane bool `json:"supportsHostedControlPlane"`
}

// HasLocalStorage reports whether the profile carries local flash devices.
func (p NodeProfile) HasLocalStorage() bool {
	return p.FlashDeviceCount > 0 && p.FlashDeviceCapacityGB > 0
}

// ResourceDemand is the aggregate footprint of the eligible VMs.
type ResourceDemand struct {
	TotalVCPU      int           `json:"totalVCPU"`
	TotalMemoryGB  float64       `json:"totalMemoryGB"`
	TotalStorageGB float64       `json:"totalStorageGB"`
	VMCount        int           `json:"vmCount"`
	StorageMetric  StorageMetric `json:"storageMetric"`
}

// Reservation is the per-node infrastructure overhead taken off the profile
// before any workload is placed.
type Reservation struct {
	CPUCores float64 `json:"cpuCores"`
	MemoryGB float64 `json:"memoryGB"`
}

// CapacityModelResult is the usable capacity of a single node.
type CapacityModelResult struct {
	Reservation        Reservation `json:"reservation"`
	AvailableCores     float64     `json:"availableCores"`
	EffectiveCores     float64     `json:"effectiveCores"`
	UsableVCPU         int         `json:"usableVCPU"`
	AvailableMemoryGB  float64     `json:"availableMemoryGB"`
	UsableMemoryGB     int         `json:"usableMemoryGB"`
	RawStorageGB       float64     `json:"rawStorageGB"`
	StorageEfficiency  float64     `json:"storageEfficiency"`
	MaxUsableStorageGB int         `json:"maxUsableStorageGB"`
	UsableStorageGB    int         `json:"usableStorageGB"`
}

// NodeRequirements is the terminal sizing decision.
type NodeRequirements struct {
	TotalVCPU               int     `json:"totalVCPU"`
	TotalMemoryGB           int     `json:"totalMemoryGB"`
	TotalStorageGB          float64 `json:"totalStorageGB"`
	StorageGrowthMultiplier float64 `json:"storageGrowthMultiplier"`

	NodesForCPU     int `json:"nodesForCPU"`
	NodesForMemory  int `json:"nodesForMemory"`
	NodesForStorage int `json:"nodesForStorage"`

	NodesForCPUAtThreshold     int `json:"nodesForCPUAtThreshold"`
	NodesForMemoryAtThreshold  int `json:"nodesForMemoryAtThreshold"`
	NodesForStorageAtThreshold int `json:"nodesForStorageAtThreshold"`

	MinSurvivingNodes int          `json:"minSurvivingNodes"`
	RedundancyBuffer  int          `json:"redundancyBuffer"`
	PreRoundingTotal  int          `json:"preRoundingTotal"`
	TotalNodes        int          `json:"totalNodes"`
	LimitingFactor    ResourceKind `json:"limitingFactor"`
}

// ResourceUtilization is the per-node load of one resource before and after
// the simulated failures.
type ResourceUtilization struct {
	HealthyPercent      float64 `json:"healthyPercent"`
	AfterFailurePercent float64 `json:"afterFailurePercent"`
	ThresholdPercent    float64 `json:"thresholdPercent"`
	// Unsatisfiable is set when no node survives to carry the load.
	Unsatisfiable bool `json:"unsatisfiable"`
	Passes        bool `json:"passes"`
}

// RedundancyValidation is the outcome of a failure simulation.
type RedundancyValidation struct {
	TotalNodes     int                 `json:"totalNodes"`
	FailedNodes    int                 `json:"failedNodes"`
	SurvivingNodes int                 `json:"survivingNodes"`
	CPU            ResourceUtilization `json:"cpu"`
	Memory         ResourceUtilization `json:"memory"`
	Storage        ResourceUtilization `json:"storage"`
	QuorumPasses   bool                `json:"quorumPasses"`
	AllPass        bool                `json:"allPass"`
}
