// Package sizing estimates how many worker nodes a cluster needs to host a
// fleet of virtual machines and checks that the cluster survives node
// failures.
//
// The package is a chain of pure functions:
//
//	[]VM ──AggregateDemand──▶ ResourceDemand ─┐
//	                                          ├─CalculateRequirements─▶ NodeRequirements ─ValidateRedundancy─▶ RedundancyValidation
//	NodeProfile ──CalculateCapacity──▶ CapacityModelResult ─┘
//
// Nothing is cached or mutated: calling ComputeSizing twice with the same
// inputs returns identical values, and results for different profiles can
// be computed concurrently without synchronization.
//
// Division by zero never happens. A dimension without usable capacity needs
// zero nodes and cannot be the limiting factor; a cluster without survivors
// is reported as unsatisfiable rather than divided by.
package sizing
