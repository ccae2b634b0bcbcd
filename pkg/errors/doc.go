// Package errors provides custom error types for the migration sizer.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────┬────────┬─────────────────────────────────────┐
//	│ Error Type               │ HTTP   │ Description                         │
//	├──────────────────────────┼────────┼─────────────────────────────────────┤
//	│ ResourceNotFoundError    │ 404    │ Profile, scenario or vm not found   │
//	│ NoProfileSelectedError   │ 422    │ Sizing requested without a profile  │
//	│ EmptyInventoryError      │ 422    │ No eligible vm contributes demand   │
//	│ InvalidConfigError       │ 400    │ Sizing ratios out of bounds         │
//	│ InvalidFilterError       │ 400    │ Scope expression does not parse     │
//	│ InventoryImportError     │ 400    │ Uploaded workbook is unusable       │
//	│ UnauthorizedError        │ 401    │ Missing or invalid bearer token     │
//	└──────────────────────────┴────────┴─────────────────────────────────────┘
//
// # NoProfileSelectedError and EmptyInventoryError
//
// These are the only two conditions the sizing core surfaces. Instead of
// running the formulas against a zero demand (which would present a
// misleadingly small cluster as valid), sizing.ComputeSizing returns one of
// them together with nil requirements.
//
// Usage:
//
//	capacity, req, err := sizing.ComputeSizing(demand, profile, cfg)
//	switch {
//	case errors.IsNoProfileSelectedError(err), errors.IsEmptyInventoryError(err):
//	    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
//	}
//
// # InvalidConfigError
//
// Carries the list of violated constraints reported by the validator.
//
// Constructor:
//   - NewInvalidConfigError(violations ...string)
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	wrapped := fmt.Errorf("sizing failed: %w", errors.NewProfileNotFoundError("m5"))
//	errors.IsResourceNotFoundError(wrapped) // returns true
package errors
