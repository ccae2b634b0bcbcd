package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// Size runs the sizing pipeline for one profile and stores the scenario
// (POST /sizing)
func (h *Handler) Size(c *gin.Context) {
	var body v1.SizingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := body.ToModel(h.defaults)
	if err != nil {
		abortWithError(c, "sizing_handler", "size", srvErrors.NewInvalidConfigError(err.Error()))
		return
	}

	scenario, err := h.sizingSrv.Size(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, "sizing_handler", "size", err)
		return
	}

	c.JSON(http.StatusCreated, v1.NewScenario(*scenario))
}

// Compare sizes several profiles against the same demand
// (POST /sizing/compare)
func (h *Handler) Compare(c *gin.Context) {
	var body v1.CompareRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := body.ToModel(h.defaults)
	if err != nil {
		abortWithError(c, "sizing_handler", "compare", srvErrors.NewInvalidConfigError(err.Error()))
		return
	}

	results, err := h.sizingSrv.Compare(c.Request.Context(), req, body.Profiles)
	if err != nil {
		abortWithError(c, "sizing_handler", "compare profiles", err)
		return
	}

	resp := v1.CompareResponse{Results: make([]v1.SizingResult, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, v1.NewSizingResult(r))
	}

	c.JSON(http.StatusOK, resp)
}
