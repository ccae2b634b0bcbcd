package v1

import (
	"encoding/json"
	"time"

	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

// Profile is a candidate node profile.
type Profile struct {
	Name                  string  `json:"name"`
	PhysicalCores         int     `json:"physicalCores"`
	Threads               int     `json:"threads"`
	MemoryGB              float64 `json:"memoryGB"`
	FlashDevices          int     `json:"flashDevices"`
	FlashDeviceCapacityGB float64 `json:"flashDeviceCapacityGB"`
	BareMetal             bool    `json:"bareMetal"`
	HostedControlPlane    bool    `json:"hostedControlPlane"`
}

type VM struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	PowerState     string `json:"powerState"`
	Template       bool   `json:"template"`
	Excluded       bool   `json:"excluded"`
	Eligible       bool   `json:"eligible"`
	Cluster        string `json:"cluster"`
	Datacenter     string `json:"datacenter"`
	Cpus           int    `json:"cpus"`
	MemoryMB       int64  `json:"memoryMB"`
	ProvisionedMB  int64  `json:"provisionedMB"`
	InUseMB        int64  `json:"inUseMB"`
	DiskCapacityMB int64  `json:"diskCapacityMB"`
}

// GetVMsParams are the query parameters of GET /vms.
type GetVMsParams struct {
	Clusters []string `form:"cluster"`
	Scope    string   `form:"scope"`
	Eligible *bool    `form:"eligible"`
	Page     *int     `form:"page"`
	PageSize *int     `form:"pageSize"`
}

type VMListResponse struct {
	Vms       []VM `json:"vms"`
	Total     int  `json:"total"`
	Page      int  `json:"page"`
	PageCount int  `json:"pageCount"`
}

type ExclusionRequest struct {
	Ids      []string `json:"ids" binding:"required,min=1"`
	Excluded *bool    `json:"excluded" binding:"required"`
}

type ExclusionResponse struct {
	Changed int64 `json:"changed"`
}

type Inventory struct {
	Source    string    `json:"source"`
	VmCount   int       `json:"vmCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SizingRequest is the body of POST /sizing. Config holds a partial
// SizingConfig overlaid on the server defaults.
type SizingRequest struct {
	Profile     string          `json:"profile"`
	FailedNodes *int            `json:"failedNodes,omitempty"`
	Scope       string          `json:"scope,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// CompareRequest is the body of POST /sizing/compare. An empty profile list
// compares the whole catalog.
type CompareRequest struct {
	Profiles    []string        `json:"profiles"`
	FailedNodes *int            `json:"failedNodes,omitempty"`
	Scope       string          `json:"scope,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

type SizingResult struct {
	Profile              Profile                       `json:"profile"`
	Demand               sizing.ResourceDemand         `json:"demand"`
	Capacity             sizing.CapacityModelResult    `json:"capacity"`
	Requirements         sizing.NodeRequirements       `json:"requirements"`
	Validation           sizing.RedundancyValidation   `json:"validation"`
	Sweep                []sizing.RedundancyValidation `json:"sweep"`
	MaxToleratedFailures int                           `json:"maxToleratedFailures"`
	Summary              string                        `json:"summary"`
}

type CompareResponse struct {
	Results []SizingResult `json:"results"`
}

type Scenario struct {
	Id        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Scope     string              `json:"scope"`
	Config    sizing.SizingConfig `json:"config"`
	Result    SizingResult        `json:"result"`
}

// ScenarioSummary is one entry of GET /scenarios.
type ScenarioSummary struct {
	Id             string              `json:"id"`
	CreatedAt      time.Time           `json:"createdAt"`
	Profile        string              `json:"profile"`
	Scope          string              `json:"scope"`
	TotalNodes     int                 `json:"totalNodes"`
	LimitingFactor sizing.ResourceKind `json:"limitingFactor"`
	AllPass        bool                `json:"allPass"`
}
