package models

import (
	"time"
)

// Inventory describes the last imported inventory.
type Inventory struct {
	Source    string
	VMCount   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
