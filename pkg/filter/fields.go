package filter

import (
	"slices"
	"strings"
)

type fieldKind int

const (
	textField fieldKind = iota
	boolField
	countField
	sizeField
)

type field struct {
	column string
	kind   fieldKind
}

// fields maps filter identifiers to columns of the vms table. Size columns
// hold MiB.
var fields = map[string]field{
	"name":          {column: "name", kind: textField},
	"cluster":       {column: "cluster", kind: textField},
	"datacenter":    {column: "datacenter", kind: textField},
	"power_state":   {column: "power_state", kind: textField},
	"template":      {column: "template", kind: boolField},
	"excluded":      {column: "excluded", kind: boolField},
	"cpus":          {column: "cpus", kind: countField},
	"memory":        {column: "memory", kind: sizeField},
	"provisioned":   {column: "provisioned", kind: sizeField},
	"in_use":        {column: "in_use", kind: sizeField},
	"disk_capacity": {column: "disk_capacity", kind: sizeField},
}

func lookupField(name string) (field, bool) {
	f, ok := fields[strings.ToLower(name)]
	return f, ok
}

// Identifiers lists the names usable in a filter expression.
func Identifiers() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (k fieldKind) accepts(op Token) bool {
	switch k {
	case textField:
		return op == equal || op == notEqual || op.isRegex()
	case boolField:
		return op == equal || op == notEqual
	default:
		return op.isComparison()
	}
}

func (k fieldKind) acceptsValue(op Token, v Expression) bool {
	switch k {
	case textField:
		if op.isRegex() {
			_, ok := v.(*regexExpression)
			return ok
		}
		_, ok := v.(*stringExpression)
		return ok
	case boolField:
		_, ok := v.(*booleanExpression)
		return ok
	case countField:
		q, ok := v.(*quantityExpression)
		return ok && q.Unit == NoQuantityUnit
	case sizeField:
		_, ok := v.(*quantityExpression)
		return ok
	}
	return false
}
