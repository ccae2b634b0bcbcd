package sizing

import "github.com/creasty/defaults"

// SizingConfig holds every tunable ratio of a sizing run. The core never
// validates it: bounds are declared in the validate tags and enforced by the
// caller (see internal/config).
type SizingConfig struct {
	CPUOvercommitRatio          float64 `json:"cpuOvercommitRatio" yaml:"cpuOvercommitRatio" default:"4" validate:"gt=0"`
	MemoryOvercommitRatio       float64 `json:"memoryOvercommitRatio" yaml:"memoryOvercommitRatio" default:"1" validate:"gt=0"`
	HyperthreadingEnabled       bool    `json:"hyperthreadingEnabled" yaml:"hyperthreadingEnabled" default:"true"`
	HyperthreadingMultiplier    float64 `json:"hyperthreadingMultiplier" yaml:"hyperthreadingMultiplier" default:"1.5" validate:"gte=1"`
	ReplicationFactor           int     `json:"replicationFactor" yaml:"replicationFactor" default:"3" validate:"gte=1"`
	OperationalCapacityFraction float64 `json:"operationalCapacityFraction" yaml:"operationalCapacityFraction" default:"0.75" validate:"gte=0,lte=1"`
	StorageOverheadFraction     float64 `json:"storageOverheadFraction" yaml:"storageOverheadFraction" default:"0.15" validate:"gte=0,lte=1"`

	// Per-VM virtualization cost in vCPU and GB, plus a proportional share of
	// the base totals expressed as a fraction (0.05 = 5%).
	CPUFixedOverheadPerVM         float64 `json:"cpuFixedOverheadPerVM" yaml:"cpuFixedOverheadPerVM" default:"0.1" validate:"gte=0"`
	CPUProportionalOverheadPct    float64 `json:"cpuProportionalOverheadPct" yaml:"cpuProportionalOverheadPct" default:"0.05" validate:"gte=0"`
	MemoryFixedOverheadPerVM      float64 `json:"memoryFixedOverheadPerVM" yaml:"memoryFixedOverheadPerVM" default:"0.25" validate:"gte=0"`
	MemoryProportionalOverheadPct float64 `json:"memoryProportionalOverheadPct" yaml:"memoryProportionalOverheadPct" default:"0.02" validate:"gte=0"`

	AnnualGrowthRatePercent              float64 `json:"annualGrowthRatePercent" yaml:"annualGrowthRatePercent" default:"10" validate:"gte=0,lte=100"`
	PlanningHorizonYears                 int     `json:"planningHorizonYears" yaml:"planningHorizonYears" default:"3" validate:"gte=0,lte=30"`
	VirtualizationStorageOverheadPercent float64 `json:"virtualizationStorageOverheadPercent" yaml:"virtualizationStorageOverheadPercent" default:"10" validate:"gte=0"`

	NodeRedundancyBuffer               int           `json:"nodeRedundancyBuffer" yaml:"nodeRedundancyBuffer" default:"1" validate:"gte=0,lte=100"`
	EvictionThresholdPercent           float64       `json:"evictionThresholdPercent" yaml:"evictionThresholdPercent" default:"80" validate:"gt=0,lte=100"`
	StorageOperationalThresholdPercent float64       `json:"storageOperationalThresholdPercent" yaml:"storageOperationalThresholdPercent" default:"90" validate:"gt=0,lte=100"`
	StorageMetric                      StorageMetric `json:"storageMetric" yaml:"storageMetric" default:"provisioned" validate:"oneof=provisioned inUse diskCapacity"`
}

// DefaultSizingConfig returns a config populated from the default tags.
func DefaultSizingConfig() SizingConfig {
	var cfg SizingConfig
	defaults.MustSet(&cfg)
	return cfg
}
