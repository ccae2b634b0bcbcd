package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
	"github.com/kubev2v/migration-sizer/internal/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetVMs returns the list of VMs with filtering and pagination
// (GET /vms)
func (h *Handler) GetVMs(c *gin.Context) {
	var params v1.GetVMsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	svcParams := services.VMListParams{
		Clusters: params.Clusters,
		Scope:    params.Scope,
		Limit:    uint64(pageSize),
		Offset:   uint64((page - 1) * pageSize),
	}
	if params.Eligible != nil {
		svcParams.EligibleOnly = *params.Eligible
	}

	vms, total, err := h.vmSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		abortWithError(c, "vm_handler", "list VMs", err)
		return
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	apiVMs := make([]v1.VM, 0, len(vms))
	for _, vm := range vms {
		apiVMs = append(apiVMs, v1.NewVMFromModel(vm))
	}

	c.JSON(http.StatusOK, v1.VMListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     total,
		Vms:       apiVMs,
	})
}

// SetExclusions adds vms to or removes them from the exclusion set
// (PATCH /vms/exclusions)
func (h *Handler) SetExclusions(c *gin.Context) {
	var req v1.ExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.vmSrv.SetExcluded(c.Request.Context(), req.Ids, *req.Excluded)
	if err != nil {
		abortWithError(c, "vm_handler", "update exclusions", err)
		return
	}

	c.JSON(http.StatusOK, v1.ExclusionResponse{Changed: changed})
}
