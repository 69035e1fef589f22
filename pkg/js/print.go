package js

import (
	"fmt"
	"strings"
)

// Print emits JavaScript source for an expression node.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Identifier:
		return n.Name
	case *Member:
		return Print(n.Object) + "." + n.Property
	case *StringLit:
		return quote(n.Value)
	case *NumberLit:
		return n.Value
	case *BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *NullLit:
		return "null"
	case *Array:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = Print(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = Print(a)
		}
		return Print(n.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *Arrow:
		return "(" + strings.Join(n.Params, ", ") + ") => " + Print(n.Body)
	case *Raw:
		return n.Source
	default:
		panic(fmt.Sprintf("js: unhandled expression node %T", e))
	}
}

// quote renders a double-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
