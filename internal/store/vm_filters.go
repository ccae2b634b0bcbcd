package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/migration-sizer/internal/models"
)

// ListOption modifies a SELECT query for filtering/sorting/pagination.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// ByClusters filters by cluster names (OR logic).
func ByClusters(clusters ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(clusters) == 0 {
			return b
		}
		return b.Where(sq.Eq{"cluster": clusters})
	}
}

// ByIDs filters by vm id.
func ByIDs(ids ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(ids) == 0 {
			return b
		}
		return b.Where(sq.Eq{"id": ids})
	}
}

// ByScope applies a compiled scope expression. A nil scope is a no-op.
func ByScope(scope sq.Sqlizer) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if scope == nil {
			return b
		}
		return b.Where(scope)
	}
}

// Eligible keeps the vms that contribute to sizing demand.
func Eligible() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.And{
			sq.Expr("lower(power_state) = lower(?)", models.PowerStatePoweredOn),
			sq.Eq{"template": false},
			sq.Eq{"excluded": false},
		})
	}
}

// WithLimit sets the LIMIT clause.
func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

// WithOffset sets the OFFSET clause.
func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort orders by name with id as tie-breaker.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("name", "id")
	}
}
