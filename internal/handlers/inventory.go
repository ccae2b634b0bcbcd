package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
)

const maxInventorySize = 64 << 20

// GetInventory returns metadata of the last imported inventory
// (GET /inventory)
func (h *Handler) GetInventory(c *gin.Context) {
	inv, err := h.inventorySrv.GetInventory(c.Request.Context())
	if err != nil {
		abortWithError(c, "inventory_handler", "get inventory", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewInventory(*inv))
}

// ImportInventory replaces the inventory with an uploaded RVTools workbook
// (POST /inventory, multipart field "file")
func (h *Handler) ImportInventory(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxInventorySize)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing inventory file: " + err.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open inventory file: " + err.Error()})
		return
	}
	defer func() { _ = f.Close() }()

	inv, err := h.inventorySrv.Import(c.Request.Context(), fh.Filename, f)
	if err != nil {
		abortWithError(c, "inventory_handler", "import inventory", err)
		return
	}

	c.JSON(http.StatusCreated, v1.NewInventory(*inv))
}
