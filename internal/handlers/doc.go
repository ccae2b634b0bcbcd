// Package handlers implements the HTTP API layer of the migration sizer.
//
// Handlers delegate business logic to the services layer and focus on
// request validation, response formatting, and HTTP semantics. All handlers
// are methods on a single Handler struct which depends on small service
// interfaces so they can be replaced by mocks in tests.
//
// # API Endpoints
//
// Routes are mounted under /api/v1 by RegisterHandlers:
//
//	┌────────┬───────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint              │ Description                          │
//	├────────┼───────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /health               │ Liveness                             │
//	│ GET    │ /profiles             │ Node profile catalog                 │
//	│ GET    │ /inventory            │ Last imported inventory metadata     │
//	│ POST   │ /inventory            │ Import an RVTools workbook ("file")  │
//	│ GET    │ /vms                  │ List VMs with filtering/pagination   │
//	│ PATCH  │ /vms/exclusions       │ Exclude or re-include VMs            │
//	│ POST   │ /sizing               │ Size one profile, store a scenario   │
//	│ POST   │ /sizing/compare       │ Size several profiles                │
//	│ GET    │ /scenarios            │ List stored scenarios                │
//	│ GET    │ /scenarios/:id        │ Get one scenario                     │
//	│ GET    │ /scenarios/:id/report │ Scenario as an xlsx workbook         │
//	└────────┴───────────────────────┴──────────────────────────────────────┘
//
// GET /vms accepts cluster (repeatable), scope (a filter expression such as
// "cluster = 'prod' and memory >= 8GB"), eligible, page and pageSize
// (default 20, max 100).
//
// POST /sizing takes a partial sizing config which is overlaid on the server
// defaults:
//
//	{
//	    "profile": "m5.metal",
//	    "failedNodes": 2,
//	    "scope": "cluster = 'prod'",
//	    "config": { "cpuOvercommitRatio": 6 }
//	}
//
// # Error Handling
//
// Errors are returned as { "error": "message" }:
//
//	┌──────────────────────────────────────────────┬────────┐
//	│ Error Type                                   │ Status │
//	├──────────────────────────────────────────────┼────────┤
//	│ Malformed body, InvalidConfig, InvalidFilter │ 400    │
//	│ InventoryImportError                         │ 400    │
//	│ UnauthorizedError                            │ 401    │
//	│ ResourceNotFoundError                        │ 404    │
//	│ NoProfileSelected, EmptyInventory            │ 422    │
//	│ Internal error                               │ 500    │
//	└──────────────────────────────────────────────┴────────┘
package handlers
