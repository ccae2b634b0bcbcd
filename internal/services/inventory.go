package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/pkg/rvtools"
)

// Invalidator drops results derived from the inventory.
type Invalidator interface {
	Invalidate()
}

type InventoryService struct {
	store       *store.Store
	invalidator Invalidator
}

func NewInventoryService(st *store.Store, invalidator Invalidator) *InventoryService {
	srv := &InventoryService{
		store:       st,
		invalidator: invalidator,
	}

	return srv
}

// GetInventory retrieves the metadata of the last import.
func (c *InventoryService) GetInventory(ctx context.Context) (*models.Inventory, error) {
	return c.store.Inventory().Get(ctx)
}

// Import replaces the stored vms with the content of an RVTools export.
func (c *InventoryService) Import(ctx context.Context, source string, r io.Reader) (*models.Inventory, error) {
	vms, err := rvtools.ReadVInfo(r)
	if err != nil {
		return nil, err
	}

	if err := c.store.VM().ReplaceAll(ctx, vms); err != nil {
		return nil, err
	}
	if err := c.store.Inventory().Save(ctx, source, len(vms)); err != nil {
		return nil, err
	}

	if c.invalidator != nil {
		c.invalidator.Invalidate()
	}

	zap.S().Named("inventory_service").Infow("inventory imported", "source", source, "vms", len(vms))

	return c.store.Inventory().Get(ctx)
}
