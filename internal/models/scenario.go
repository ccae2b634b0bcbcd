package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

// SizingRequest carries everything a caller may choose for one sizing run.
type SizingRequest struct {
	Profile string
	// FailedNodes defaults to the configured redundancy buffer when nil.
	FailedNodes *int
	// Scope is an optional filter expression narrowing the eligible vms.
	Scope  string
	Config sizing.SizingConfig
}

// FailureCount resolves the number of failures to simulate.
func (r SizingRequest) FailureCount() int {
	if r.FailedNodes != nil {
		return max(0, *r.FailedNodes)
	}
	return r.Config.NodeRedundancyBuffer
}

// SizingResult is the full pipeline output for one profile.
type SizingResult struct {
	Profile              sizing.NodeProfile            `json:"profile"`
	Demand               sizing.ResourceDemand         `json:"demand"`
	Capacity             sizing.CapacityModelResult    `json:"capacity"`
	Requirements         sizing.NodeRequirements       `json:"requirements"`
	Validation           sizing.RedundancyValidation   `json:"validation"`
	Sweep                []sizing.RedundancyValidation `json:"sweep"`
	MaxToleratedFailures int                           `json:"maxToleratedFailures"`
	Summary              string                        `json:"summary"`
}

// Scenario is a stored sizing run.
type Scenario struct {
	ID        uuid.UUID           `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Scope     string              `json:"scope"`
	Config    sizing.SizingConfig `json:"config"`
	Result    SizingResult        `json:"result"`
}
