package filter

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// ToSqlizer parses src and returns a WHERE condition over the vms table.
// Literals are always bound as arguments. An empty or blank src yields nil.
func ToSqlizer(src string) (sq.Sqlizer, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	expr, err := Parse([]byte(src))
	if err != nil {
		return nil, srvErrors.NewInvalidFilterError(src, err)
	}

	cond, err := sqlize(expr)
	if err != nil {
		return nil, srvErrors.NewInvalidFilterError(src, err)
	}
	return cond, nil
}

func sqlize(expr Expression) (sq.Sqlizer, error) {
	e, ok := expr.(*binaryExpression)
	if !ok {
		return nil, fmt.Errorf("unexpected expression %s", expr)
	}

	switch e.Op {
	case and, or:
		left, err := sqlize(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := sqlize(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == and {
			return sq.And{left, right}, nil
		}
		return sq.Or{left, right}, nil
	}

	v, ok := e.Left.(*varExpression)
	if !ok {
		return nil, fmt.Errorf("expected identifier instead of %s", e.Left)
	}
	f, ok := lookupField(v.Name)
	if !ok {
		return nil, fmt.Errorf("unknown identifier %q", v.Name)
	}

	var value any
	switch r := e.Right.(type) {
	case *stringExpression:
		value = r.Value
	case *booleanExpression:
		value = r.Value
	case *regexExpression:
		value = r.Pattern
	case *quantityExpression:
		if f.kind == sizeField {
			value = r.MiB()
		} else {
			value = r.Value
		}
	default:
		return nil, fmt.Errorf("unexpected value %s", e.Right)
	}

	col := f.column
	switch e.Op {
	case equal:
		return sq.Eq{col: value}, nil
	case notEqual:
		return sq.NotEq{col: value}, nil
	case greater:
		return sq.Gt{col: value}, nil
	case gte:
		return sq.GtOrEq{col: value}, nil
	case less:
		return sq.Lt{col: value}, nil
	case lte:
		return sq.LtOrEq{col: value}, nil
	case like:
		return sq.Expr(fmt.Sprintf("regexp_matches(%s, ?)", col), value), nil
	case notLike:
		return sq.Expr(fmt.Sprintf("NOT regexp_matches(%s, ?)", col), value), nil
	}

	return nil, fmt.Errorf("unsupported operator %s", e.Op)
}
