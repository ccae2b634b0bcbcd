package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/services"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

type ProfileCatalog interface {
	List() []sizing.NodeProfile
}

type InventoryService interface {
	GetInventory(ctx context.Context) (*models.Inventory, error)
	Import(ctx context.Context, source string, r io.Reader) (*models.Inventory, error)
}

type VMService interface {
	List(ctx context.Context, params services.VMListParams) ([]models.VM, int, error)
	SetExcluded(ctx context.Context, ids []string, excluded bool) (int64, error)
}

type SizingService interface {
	Size(ctx context.Context, req models.SizingRequest) (*models.Scenario, error)
	Compare(ctx context.Context, req models.SizingRequest, profiles []string) ([]models.SizingResult, error)
	GetScenario(ctx context.Context, id uuid.UUID) (*models.Scenario, error)
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
}

type Handler struct {
	catalog      ProfileCatalog
	inventorySrv InventoryService
	vmSrv        VMService
	sizingSrv    SizingService
	// defaults is the sizing config request bodies are overlaid on.
	defaults sizing.SizingConfig
}

func New(catalog ProfileCatalog, inventorySrv InventoryService, vmSrv VMService, sizingSrv SizingService, defaults sizing.SizingConfig) *Handler {
	return &Handler{
		catalog:      catalog,
		inventorySrv: inventorySrv,
		vmSrv:        vmSrv,
		sizingSrv:    sizingSrv,
		defaults:     defaults,
	}
}

// RegisterHandlers mounts every route on router.
func (h *Handler) RegisterHandlers(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/profiles", h.GetProfiles)
	router.GET("/inventory", h.GetInventory)
	router.POST("/inventory", h.ImportInventory)
	router.GET("/vms", h.GetVMs)
	router.PATCH("/vms/exclusions", h.SetExclusions)
	router.POST("/sizing", h.Size)
	router.POST("/sizing/compare", h.Compare)
	router.GET("/scenarios", h.GetScenarios)
	router.GET("/scenarios/:id", h.GetScenario)
	router.GET("/scenarios/:id/report", h.GetScenarioReport)
}

// errorStatus maps a service error to its HTTP status.
func errorStatus(err error) int {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		return http.StatusNotFound
	case srvErrors.IsNoProfileSelectedError(err), srvErrors.IsEmptyInventoryError(err), srvErrors.IsUnsatisfiableDemandError(err):
		return http.StatusUnprocessableEntity
	case srvErrors.IsInvalidConfigError(err), srvErrors.IsInvalidFilterError(err), srvErrors.IsInventoryImportError(err):
		return http.StatusBadRequest
	case srvErrors.IsUnauthorizedError(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err with its status. Internal errors are logged and
// reported as "failed to <action>".
func abortWithError(c *gin.Context, logger string, action string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		zap.S().Named(logger).Errorw("failed to "+action, "error", err)
		c.JSON(status, gin.H{"error": "failed to " + action + ": " + err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
