package js

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseExpr classifies an expression source string into an Expr.
//
// Recognized shapes: string literals (single, double or backtick quoted),
// numbers, `true`/`false`/`null`, identifiers, and dotted member chains.
// Everything else becomes a Raw node carrying the trimmed source.
func ParseExpr(src string) (Expr, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return nil, fmt.Errorf("empty expression")
	}

	if e, ok := parseStringLit(s); ok {
		return e, nil
	}
	if e, ok := parseNumberLit(s); ok {
		return e, nil
	}
	switch s {
	case "true":
		return &BoolLit{Value: true}, nil
	case "false":
		return &BoolLit{Value: false}, nil
	case "null":
		return &NullLit{}, nil
	}
	if e, ok := parseMemberChain(s); ok {
		return e, nil
	}

	return &Raw{Source: s}, nil
}

func parseStringLit(s string) (*StringLit, bool) {
	if len(s) < 2 {
		return nil, false
	}
	quote := s[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return nil, false
	}
	if s[len(s)-1] != quote {
		return nil, false
	}
	var b strings.Builder
	for i := 1; i < len(s)-1; i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s)-1 {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		if c == quote {
			// unescaped closing quote before the end: not a single literal
			return nil, false
		}
		b.WriteByte(c)
	}
	return &StringLit{Value: b.String()}, true
}

func parseNumberLit(s string) (*NumberLit, bool) {
	dot := false
	for i, r := range s {
		if r == '.' && !dot && i > 0 {
			dot = true
			continue
		}
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if !unicode.IsDigit(r) {
			return nil, false
		}
	}
	return &NumberLit{Value: s}, true
}

func parseMemberChain(s string) (Expr, bool) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if !isIdentifier(p) {
			return nil, false
		}
	}
	var e Expr = &Identifier{Name: parts[0]}
	for _, p := range parts[1:] {
		e = &Member{Object: e, Property: p}
	}
	return e, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' || r == '$' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
