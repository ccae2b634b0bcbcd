package filter

import (
	"fmt"
	"strings"
)

// operators is ordered so that two-byte lexemes win over their prefixes.
var operators = []struct {
	lexeme string
	tok    Token
}{
	{"!=", notEqual},
	{"!~", notLike},
	{"<=", lte},
	{">=", gte},
	{"=", equal},
	{"~", like},
	{"<", less},
	{">", greater},
	{"(", lbracket},
	{")", rbracket},
}

var keywords = map[string]Token{
	"and":   and,
	"or":    or,
	"true":  boolean,
	"false": boolean,
}

// lexer splits a scope expression into tokens. Positions are byte offsets
// into the source.
type lexer struct {
	src    string
	offset int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: string(src)}
}

// Scan returns the position, kind and text of the next token. Illegal tokens
// carry the reason as their text.
func (l *lexer) Scan() (int, Token, string) {
	l.skip(isSpace)

	start := l.offset
	if l.eof() {
		return start, eol, ""
	}

	switch c := l.src[l.offset]; {
	case isIdentifierStart(c):
		word := l.skip(isIdentifierPart)
		if tok, ok := keywords[strings.ToLower(word)]; ok {
			if tok == boolean {
				return start, tok, word
			}
			return start, tok, ""
		}
		return start, identifier, word
	case isDigit(c):
		return l.scanQuantity(start)
	case c == '"' || c == '\'':
		return l.scanString(start, c)
	case c == '/':
		return l.scanRegex(start)
	}

	rest := l.src[l.offset:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.lexeme) {
			l.offset += len(op.lexeme)
			return start, op.tok, ""
		}
	}

	l.offset++
	return start, illegal, fmt.Sprintf("unexpected char %q", rest[0])
}

// scanQuantity reads a decimal number with an optional size suffix such as
// GB, Gi or GiB.
func (l *lexer) scanQuantity(start int) (int, Token, string) {
	number := l.skip(func(c byte) bool { return isDigit(c) || c == '.' })
	suffix := l.skip(isIdentifierPart)

	if strings.Count(number, ".") > 1 {
		return start, illegal, "malformed number"
	}
	if _, ok := lookupUnit(suffix); !ok {
		return start, illegal, fmt.Sprintf("unknown quantity unit %q", suffix)
	}

	return start, quantity, number + suffix
}

func (l *lexer) scanString(start int, quote byte) (int, Token, string) {
	l.offset++
	end := strings.IndexByte(l.src[l.offset:], quote)
	if end < 0 {
		l.offset = len(l.src)
		return start, illegal, "unclosed string"
	}

	val := l.src[l.offset : l.offset+end]
	l.offset += end + 1
	if val == "" {
		return start, illegal, "empty string"
	}

	return start, stringLit, val
}

// scanRegex reads /pattern/. A backslash before a slash keeps the slash in
// the pattern; every other escape is passed to the regex engine untouched.
func (l *lexer) scanRegex(start int) (int, Token, string) {
	l.offset++

	var b strings.Builder
	for !l.eof() {
		c := l.src[l.offset]
		switch {
		case c == '/':
			l.offset++
			return start, regexLit, b.String()
		case c == '\\' && l.offset+1 < len(l.src) && l.src[l.offset+1] == '/':
			b.WriteByte('/')
			l.offset += 2
		default:
			b.WriteByte(c)
			l.offset++
		}
	}

	return start, illegal, "unclosed regex"
}

// skip consumes bytes while accept holds and returns them.
func (l *lexer) skip(accept func(byte) bool) string {
	start := l.offset
	for !l.eof() && accept(l.src[l.offset]) {
		l.offset++
	}
	return l.src[start:l.offset]
}

func (l *lexer) eof() bool {
	return l.offset >= len(l.src)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
