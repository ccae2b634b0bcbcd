package models

import (
	"strings"

	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

const PowerStatePoweredOn = "poweredOn"

// VM is one row of the imported inventory.
type VM struct {
	ID             string
	Name           string
	PowerState     string
	Template       bool
	Excluded       bool
	Cluster        string
	Datacenter     string
	CPUs           int
	MemoryMB       int64
	ProvisionedMB  int64
	InUseMB        int64
	DiskCapacityMB int64
}

// IsEligible reports whether the vm counts toward sizing demand: powered on,
// not a template and not excluded by the user.
func (v VM) IsEligible() bool {
	return strings.EqualFold(v.PowerState, PowerStatePoweredOn) && !v.Template && !v.Excluded
}

func (v VM) ToSizing() sizing.VM {
	return sizing.VM{
		ID:             v.ID,
		Name:           v.Name,
		CPUs:           v.CPUs,
		MemoryMB:       v.MemoryMB,
		ProvisionedMB:  v.ProvisionedMB,
		InUseMB:        v.InUseMB,
		DiskCapacityMB: v.DiskCapacityMB,
	}
}

func ToSizingVMs(vms []VM) []sizing.VM {
	out := make([]sizing.VM, 0, len(vms))
	for _, vm := range vms {
		out = append(out, vm.ToSizing())
	}
	return out
}
