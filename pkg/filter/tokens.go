package filter

// Token is the kind of a lexeme in a scope expression.
type Token int

const (
	illegal Token = iota
	eol
	and
	or
	equal
	gte
	greater
	lte
	less
	notEqual
	like
	notLike
	lbracket
	rbracket
	stringLit
	regexLit
	quantity
	identifier
	boolean
)

var tokenNames = [...]string{
	illegal:    "illegal",
	eol:        "eol",
	and:        "and",
	or:         "or",
	equal:      "equal",
	gte:        "gte",
	greater:    "greater",
	lte:        "lte",
	less:       "less",
	notEqual:   "notEqual",
	like:       "like",
	notLike:    "notLike",
	lbracket:   "lbracket",
	rbracket:   "rbracket",
	stringLit:  "stringLit",
	regexLit:   "regexLit",
	quantity:   "quantity",
	identifier: "identifier",
	boolean:    "boolean",
}

func (t Token) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "unknown"
	}
	return tokenNames[t]
}

// isComparison reports whether t compares a field with a literal value.
func (t Token) isComparison() bool {
	return t >= equal && t <= notEqual
}

func (t Token) isRegex() bool {
	return t == like || t == notLike
}
