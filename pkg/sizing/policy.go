package sizing

// Fixed cluster policy. These are not tunables: changing them changes the
// meaning of every stored scenario.
const (
	MinimumQuorumNodes = 3
	RackGroupSize      = 3
)

// Per-node infrastructure reservation for OpenShift plus OpenShift Data
// Foundation. The base part is constant, each local flash device adds an
// OSD whose cost scales linearly with the device count.
const (
	SystemReservedCPUCores = 2.0
	SystemReservedMemoryGB = 8.0
	ODFBaseCPUCores        = 6.0
	ODFBaseMemoryGB        = 24.0
	PerDeviceCPUCores      = 2.0
	PerDeviceMemoryGB      = 5.0
)

// InfrastructureReservation returns the cores and memory the platform keeps
// on a node of the given profile.
func InfrastructureReservation(profile NodeProfile) Reservation {
	devices := float64(max(0, profile.FlashDeviceCount))
	return Reservation{
		CPUCores: SystemReservedCPUCores + ODFBaseCPUCores + devices*PerDeviceCPUCores,
		MemoryGB: SystemReservedMemoryGB + ODFBaseMemoryGB + devices*PerDeviceMemoryGB,
	}
}
