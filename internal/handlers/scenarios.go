package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/report"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetScenarios lists stored scenarios, newest first
// (GET /scenarios)
func (h *Handler) GetScenarios(c *gin.Context) {
	scenarios, err := h.sizingSrv.ListScenarios(c.Request.Context())
	if err != nil {
		abortWithError(c, "scenario_handler", "list scenarios", err)
		return
	}

	resp := make([]v1.ScenarioSummary, 0, len(scenarios))
	for _, s := range scenarios {
		resp = append(resp, v1.NewScenarioSummary(s))
	}

	c.JSON(http.StatusOK, resp)
}

// GetScenario returns one stored scenario
// (GET /scenarios/:id)
func (h *Handler) GetScenario(c *gin.Context) {
	scenario, ok := h.loadScenario(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, v1.NewScenario(*scenario))
}

// GetScenarioReport renders a scenario as an xlsx workbook
// (GET /scenarios/:id/report)
func (h *Handler) GetScenarioReport(c *gin.Context) {
	scenario, ok := h.loadScenario(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, *scenario); err != nil {
		abortWithError(c, "scenario_handler", "build report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "sizing-"+scenario.ID.String()+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) loadScenario(c *gin.Context) (*models.Scenario, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": srvErrors.NewScenarioNotFoundError(c.Param("id")).Error()})
		return nil, false
	}

	scenario, err := h.sizingSrv.GetScenario(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, "scenario_handler", "get scenario", err)
		return nil, false
	}

	return scenario, true
}
