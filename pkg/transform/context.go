package transform

import (
	"fmt"

	"github.com/pugxlabs/pugx/pkg/interp"
	"github.com/pugxlabs/pugx/pkg/js"
	"github.com/pugxlabs/pugx/pkg/jsx"
)

// Context carries traversal-scoped state: whether the current child position
// requires a synthesized list key, the interpolation-reference table, and the
// source name for diagnostics.
//
// Context has value semantics. Every derivation returns a copy, so recursion
// into one subtree can never change what a sibling observes. The reference
// table is shared but read-only after construction.
type Context struct {
	file        string
	refs        interp.Table
	keyRequired bool
	keyExpr     js.Expr
}

// NewContext creates the context for one template occurrence. refs may be
// nil when the occurrence has no interpolations.
func NewContext(file string, refs interp.Table) Context {
	return Context{file: file, refs: refs}
}

// DeriveNoKey returns a context with key injection suppressed for the
// immediate child scope.
func (c Context) DeriveNoKey() Context {
	c.keyRequired = false
	c.keyExpr = nil
	return c
}

// DeriveKeyed returns a context in which elements at the current child
// position receive a synthesized key attribute with the given expression.
func (c Context) DeriveKeyed(key js.Expr) Context {
	c.keyRequired = true
	c.keyExpr = key
	return c
}

// InjectKeyIfNeeded appends a key attribute when the enclosing context marks
// the position as key-requiring. An author-written key attribute wins.
func (c Context) InjectKeyIfNeeded(attrs []jsx.Attribute) []jsx.Attribute {
	if !c.keyRequired || c.keyExpr == nil {
		return attrs
	}
	if jsx.HasAttr(attrs, "key") {
		return attrs
	}
	return append(attrs, &jsx.Attr{Name: "key", Value: &jsx.ExprContainer{Expr: c.keyExpr}})
}

// ResolveInterpolation returns the expression bound to a placeholder name,
// or false when the name has no binding.
func (c Context) ResolveInterpolation(refName string) (js.Expr, bool) {
	e, ok := c.refs[refName]
	return e, ok
}

// Raise constructs a tagged diagnostic for the current occurrence.
func (c Context) Raise(code Code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Msg: fmt.Sprintf(format, args...), File: c.file}
}
