package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type QuantityUnit int

func (q QuantityUnit) String() string {
	switch q {
	case KbQuantityUnit:
		return "Kb"
	case MbQuantityUnit:
		return "Mb"
	case GbQuantityUnit:
		return "Gb"
	case TbQuantityUnit:
		return "Tb"
	case NoQuantityUnit:
		return "noUnit"
	default:
		return "unknown"
	}
}

const (
	NoQuantityUnit QuantityUnit = iota
	KbQuantityUnit
	MbQuantityUnit // baseline: sizes are stored in MiB
	GbQuantityUnit
	TbQuantityUnit
)

// Suffixes are case-insensitive. Every unit is a power of 1024, so GB and
// GiB read the same, matching the RVTools MiB columns and the catalog's Gi
// quantities.
var quantityUnits = map[string]QuantityUnit{
	"":    NoQuantityUnit,
	"kb":  KbQuantityUnit,
	"ki":  KbQuantityUnit,
	"kib": KbQuantityUnit,
	"mb":  MbQuantityUnit,
	"mi":  MbQuantityUnit,
	"mib": MbQuantityUnit,
	"gb":  GbQuantityUnit,
	"gi":  GbQuantityUnit,
	"gib": GbQuantityUnit,
	"tb":  TbQuantityUnit,
	"ti":  TbQuantityUnit,
	"tib": TbQuantityUnit,
}

func lookupUnit(suffix string) (QuantityUnit, bool) {
	u, ok := quantityUnits[strings.ToLower(suffix)]
	return u, ok
}

// Expression is the abstract syntax tree for any expression.
type Expression interface {
	String() string
}

// binaryExpression is an expression like "a = b" or "a and b".
type binaryExpression struct {
	Left  Expression
	Op    Token
	Right Expression
}

func (e *binaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

// stringExpression is a literal string like "foo".
type stringExpression struct {
	Value string
}

func (e *stringExpression) String() string {
	return strconv.Quote(e.Value)
}

// varExpression is an identifier like "cluster" or "in_use".
type varExpression struct {
	Name string
	Pos  int
}

func (v *varExpression) String() string {
	return v.Name
}

// booleanExpression is a boolean literal (true or false).
type booleanExpression struct {
	Value bool
}

func (b *booleanExpression) String() string {
	return strconv.FormatBool(b.Value)
}

// regexExpression is a regex literal like /pattern/.
type regexExpression struct {
	Pattern string
}

func newRegexExpression(pos int, pattern string) *regexExpression {
	if _, err := regexp.Compile(pattern); err != nil {
		panic(ParseError{pos, fmt.Sprintf("invalid regex: %s", err)})
	}
	return &regexExpression{Pattern: pattern}
}

func (r *regexExpression) String() string {
	return fmt.Sprintf("/%s/", r.Pattern)
}

type quantityExpression struct {
	Value float64
	Unit  QuantityUnit
}

func newQuantityExpression(pos int, val string) *quantityExpression {
	split := strings.IndexFunc(val, func(r rune) bool { return r != '.' && (r < '0' || r > '9') })
	if split < 0 {
		split = len(val)
	}

	unit, ok := lookupUnit(val[split:])
	if !ok {
		panic(ParseError{pos, fmt.Sprintf("unknown quantity unit %q", val[split:])})
	}

	v, err := strconv.ParseFloat(val[:split], 64)
	if err != nil {
		panic(ParseError{pos, fmt.Sprintf("invalid quantity %q", val)})
	}

	return &quantityExpression{Value: v, Unit: unit}
}

func (q *quantityExpression) String() string {
	if q.Unit == NoQuantityUnit {
		return fmt.Sprintf("%.2f", q.Value)
	}
	return fmt.Sprintf("%.2f%s", q.Value, q.Unit)
}

// MiB returns the quantity in the storage baseline unit. A bare number is
// taken as MiB already.
func (q *quantityExpression) MiB() float64 {
	switch q.Unit {
	case KbQuantityUnit:
		return q.Value / 1024
	case GbQuantityUnit:
		return q.Value * 1024
	case TbQuantityUnit:
		return q.Value * 1024 * 1024
	default:
		return q.Value
	}
}
