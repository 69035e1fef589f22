// Package codegen emits JSX source text from the output element tree.
package codegen

import (
	"fmt"
	"strings"

	"github.com/pugxlabs/pugx/pkg/js"
	"github.com/pugxlabs/pugx/pkg/jsx"
)

const indentUnit = "  "

// Print renders a child as formatted JSX. The result has no trailing
// newline; callers decide how the snippet is embedded.
func Print(c jsx.Child) string {
	var b strings.Builder
	writeChild(&b, c, 0, false)
	return b.String()
}

// PrintInline renders a child on a single line.
func PrintInline(c jsx.Child) string {
	var b strings.Builder
	writeChild(&b, c, 0, true)
	return b.String()
}

func writeChild(b *strings.Builder, c jsx.Child, depth int, inline bool) {
	switch n := c.(type) {
	case *jsx.Element:
		writeElement(b, n, depth, inline)
	case *jsx.Fragment:
		writeTagged(b, "<>", "</>", n.Children, depth, inline)
	case *jsx.Text:
		b.WriteString(escapeText(n.Value))
	case *jsx.ExprContainer:
		b.WriteString("{" + js.Print(n.Expr) + "}")
	case *jsx.MapExpr:
		writeMap(b, n, depth, inline)
	case *jsx.CondExpr:
		writeCond(b, n, depth)
	default:
		panic(fmt.Sprintf("codegen: unhandled child node %T", c))
	}
}

func writeElement(b *strings.Builder, e *jsx.Element, depth int, inline bool) {
	tag := js.Print(e.Tag)
	b.WriteString("<" + tag)
	for _, a := range e.Attrs {
		b.WriteString(" " + renderAttr(a))
	}
	if e.SelfClosing {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
	writeChildren(b, e.Children, depth, inline)
	b.WriteString("</" + tag + ">")
}

func writeTagged(b *strings.Builder, open, close string, children []jsx.Child, depth int, inline bool) {
	b.WriteString(open)
	writeChildren(b, children, depth, inline)
	b.WriteString(close)
}

// writeChildren lays out a child list: a single text or expression child
// stays on the parent's line, anything else gets one line per child.
func writeChildren(b *strings.Builder, children []jsx.Child, depth int, inline bool) {
	if inline || isInlinable(children) {
		for _, c := range children {
			writeChild(b, c, depth, true)
		}
		return
	}
	for _, c := range children {
		b.WriteString("\n" + strings.Repeat(indentUnit, depth+1))
		writeChild(b, c, depth+1, false)
	}
	b.WriteString("\n" + strings.Repeat(indentUnit, depth))
}

func isInlinable(children []jsx.Child) bool {
	if len(children) != 1 {
		return false
	}
	switch children[0].(type) {
	case *jsx.Text, *jsx.ExprContainer:
		return true
	}
	return false
}

func writeMap(b *strings.Builder, m *jsx.MapExpr, depth int, inline bool) {
	head := fmt.Sprintf("{%s.map((%s, %s) => ", js.Print(m.Source), m.ValueParam, m.IndexParam)
	body := jsx.Group(m.Body)
	if inline {
		b.WriteString(head)
		writeChild(b, body, depth, true)
		b.WriteString(")}")
		return
	}
	b.WriteString(head + "(")
	b.WriteString("\n" + strings.Repeat(indentUnit, depth+1))
	writeChild(b, body, depth+1, false)
	b.WriteString("\n" + strings.Repeat(indentUnit, depth) + "))}")
}

func writeCond(b *strings.Builder, c *jsx.CondExpr, depth int) {
	b.WriteString("{" + js.Print(c.Test) + " ? ")
	writeBranch(b, c.Then, depth)
	b.WriteString(" : ")
	writeBranch(b, c.Else, depth)
	b.WriteString("}")
}

func writeBranch(b *strings.Builder, children []jsx.Child, depth int) {
	if len(children) == 0 {
		b.WriteString("null")
		return
	}
	writeChild(b, jsx.Group(children), depth, true)
}

func renderAttr(a jsx.Attribute) string {
	switch n := a.(type) {
	case *jsx.SpreadAttr:
		return "{..." + js.Print(n.Expr) + "}"
	case *jsx.Attr:
		switch v := n.Value.(type) {
		case nil:
			return n.Name
		case *jsx.StringValue:
			return n.Name + `="` + escapeAttr(v.Value) + `"`
		case *jsx.ExprContainer:
			return n.Name + "={" + js.Print(v.Expr) + "}"
		case *jsx.Element:
			return n.Name + "={" + PrintInline(v) + "}"
		default:
			panic(fmt.Sprintf("codegen: unhandled attribute value %T", v))
		}
	default:
		panic(fmt.Sprintf("codegen: unhandled attribute node %T", a))
	}
}

var textEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

var attrEscaper = strings.NewReplacer(`"`, "&quot;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
