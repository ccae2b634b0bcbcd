package v1

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

func NewProfile(p sizing.NodeProfile) Profile {
	return Profile{
		Name:                  p.Name,
		PhysicalCores:         p.PhysicalCores,
		Threads:               p.Threads,
		MemoryGB:              p.MemoryGB,
		FlashDevices:          p.FlashDeviceCount,
		FlashDeviceCapacityGB: p.FlashDeviceCapacityGB,
		BareMetal:             p.SupportsBareMetal,
		HostedControlPlane:    p.SupportsHostedControlPlane,
	}
}

// NewVMFromModel converts a models.VM to an API VM.
func NewVMFromModel(vm models.VM) VM {
	return VM{
		Id:             vm.ID,
		Name:           vm.Name,
		PowerState:     vm.PowerState,
		Template:       vm.Template,
		Excluded:       vm.Excluded,
		Eligible:       vm.IsEligible(),
		Cluster:        vm.Cluster,
		Datacenter:     vm.Datacenter,
		Cpus:           vm.CPUs,
		MemoryMB:       vm.MemoryMB,
		ProvisionedMB:  vm.ProvisionedMB,
		InUseMB:        vm.InUseMB,
		DiskCapacityMB: vm.DiskCapacityMB,
	}
}

func NewInventory(inv models.Inventory) Inventory {
	return Inventory{
		Source:    inv.Source,
		VmCount:   inv.VMCount,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func NewSizingResult(r models.SizingResult) SizingResult {
	sweep := r.Sweep
	if sweep == nil {
		sweep = []sizing.RedundancyValidation{}
	}
	return SizingResult{
		Profile:              NewProfile(r.Profile),
		Demand:               r.Demand,
		Capacity:             r.Capacity,
		Requirements:         r.Requirements,
		Validation:           r.Validation,
		Sweep:                sweep,
		MaxToleratedFailures: r.MaxToleratedFailures,
		Summary:              r.Summary,
	}
}

func NewScenario(s models.Scenario) Scenario {
	return Scenario{
		Id:        s.ID.String(),
		CreatedAt: s.CreatedAt,
		Scope:     s.Scope,
		Config:    s.Config,
		Result:    NewSizingResult(s.Result),
	}
}

func NewScenarioSummary(s models.Scenario) ScenarioSummary {
	return ScenarioSummary{
		Id:             s.ID.String(),
		CreatedAt:      s.CreatedAt,
		Profile:        s.Result.Profile.Name,
		Scope:          s.Scope,
		TotalNodes:     s.Result.Requirements.TotalNodes,
		LimitingFactor: s.Result.Requirements.LimitingFactor,
		AllPass:        s.Result.Validation.AllPass,
	}
}

// ToModel overlays the request config on defaults. Fields absent from the
// request keep their default value.
func (r SizingRequest) ToModel(defaults sizing.SizingConfig) (models.SizingRequest, error) {
	cfg, err := overlay(defaults, r.Config)
	if err != nil {
		return models.SizingRequest{}, err
	}
	return models.SizingRequest{
		Profile:     r.Profile,
		FailedNodes: r.FailedNodes,
		Scope:       r.Scope,
		Config:      cfg,
	}, nil
}

func (r CompareRequest) ToModel(defaults sizing.SizingConfig) (models.SizingRequest, error) {
	cfg, err := overlay(defaults, r.Config)
	if err != nil {
		return models.SizingRequest{}, err
	}
	return models.SizingRequest{
		FailedNodes: r.FailedNodes,
		Scope:       r.Scope,
		Config:      cfg,
	}, nil
}

func overlay(defaults sizing.SizingConfig, raw json.RawMessage) (sizing.SizingConfig, error) {
	cfg := defaults
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return cfg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return defaults, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
