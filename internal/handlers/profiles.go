package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
)

// GetProfiles returns the node profile catalog
// (GET /profiles)
func (h *Handler) GetProfiles(c *gin.Context) {
	profiles := h.catalog.List()

	resp := make([]v1.Profile, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, v1.NewProfile(p))
	}

	c.JSON(http.StatusOK, resp)
}

// Health reports liveness
// (GET /health)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
